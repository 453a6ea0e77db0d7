package auction

import (
	"context"
	"testing"

	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/auctionerrors"
	model "github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAddFunds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		actorID       string
		userID        string
		amount        string
		wantBalance   string
		expectedError error
	}{
		{name: "admin_funds_buyer", actorID: "admin", userID: "buyer1", amount: "250.50", wantBalance: "350.50"},
		{name: "non_admin_forbidden", actorID: "buyer1", userID: "buyer1", amount: "100", wantBalance: "100", expectedError: auctionerrors.ErrForbidden},
		{name: "unauthenticated", actorID: "", userID: "buyer1", amount: "100", wantBalance: "100", expectedError: auctionerrors.ErrUnauthenticated},
		{name: "zero_amount", actorID: "admin", userID: "buyer1", amount: "0", wantBalance: "100", expectedError: auctionerrors.ErrInvalidInput},
		{name: "negative_amount", actorID: "admin", userID: "buyer1", amount: "-5", wantBalance: "100", expectedError: auctionerrors.ErrInvalidInput},
		{name: "unknown_user", actorID: "admin", userID: "ghost", amount: "100", expectedError: auctionerrors.ErrUserNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, ledger, _ := newTestService(t)
			seedUser(ledger, "admin", model.RoleSuperAdmin, "0", 0)
			seedUser(ledger, "buyer1", model.RoleBuyer, "100", 0)

			updated, err := svc.AddFunds(context.Background(), tc.actorID, tc.userID, decimal.RequireFromString(tc.amount))

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
			} else {
				require.NoError(t, err)
				requireDecimalEqual(t, tc.wantBalance, updated.Amount)
			}
			if tc.userID == "buyer1" {
				requireDecimalEqual(t, tc.wantBalance, balanceOf(t, ledger, "buyer1"))
			}
		})
	}
}

func TestRedeemPoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		actorID       string
		sellerID      string
		points        int64
		wantPoints    int64
		wantBalance   string
		expectedError error
	}{
		{name: "redeem_all", actorID: "admin", sellerID: "seller1", points: 300, wantPoints: 0, wantBalance: "130"},
		{name: "redeem_partial", actorID: "admin", sellerID: "seller1", points: 55, wantPoints: 245, wantBalance: "105.5"},
		{name: "redeem_more_than_balance", actorID: "admin", sellerID: "seller1", points: 301, wantPoints: 300, wantBalance: "100", expectedError: auctionerrors.ErrInsufficientPoints},
		{name: "non_admin_forbidden", actorID: "seller1", sellerID: "seller1", points: 10, wantPoints: 300, wantBalance: "100", expectedError: auctionerrors.ErrForbidden},
		{name: "unauthenticated", actorID: "", sellerID: "seller1", points: 10, wantPoints: 300, wantBalance: "100", expectedError: auctionerrors.ErrUnauthenticated},
		{name: "zero_points", actorID: "admin", sellerID: "seller1", points: 0, wantPoints: 300, wantBalance: "100", expectedError: auctionerrors.ErrInvalidInput},
		{name: "negative_points", actorID: "admin", sellerID: "seller1", points: -10, wantPoints: 300, wantBalance: "100", expectedError: auctionerrors.ErrInvalidInput},
		{name: "unknown_seller", actorID: "admin", sellerID: "ghost", points: 10, expectedError: auctionerrors.ErrUserNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, ledger, _ := newTestService(t)
			seedUser(ledger, "admin", model.RoleSuperAdmin, "0", 0)
			seedUser(ledger, "seller1", model.RoleSeller, "100", 300)

			updated, err := svc.RedeemPoints(context.Background(), tc.actorID, tc.sellerID, tc.points)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
			} else {
				require.NoError(t, err)
				require.Equal(t, tc.wantPoints, updated.Points)
				requireDecimalEqual(t, tc.wantBalance, updated.Amount)
			}
			if tc.sellerID == "seller1" {
				// 10 points = 1 currency unit, and a failed redemption
				// changes neither balance.
				require.Equal(t, tc.wantPoints, pointsOf(t, ledger, "seller1"))
				requireDecimalEqual(t, tc.wantBalance, balanceOf(t, ledger, "seller1"))
			}
		})
	}
}
