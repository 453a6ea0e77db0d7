package auction

import (
	"context"
	"testing"
	"time"

	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/auctionerrors"
	model "github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/models"

	"github.com/shopspring/decimal"

	"github.com/stretchr/testify/require"
)

func TestSetAuctionApproval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		actorID       string
		auctionID     string
		approved      bool
		wantStatus    model.AuctionStatus
		expectedError error
	}{
		{name: "approve_pending", actorID: "admin", auctionID: "pending1", approved: true, wantStatus: model.StatusActive},
		{name: "reject_pending", actorID: "admin", auctionID: "pending1", approved: false, wantStatus: model.StatusRejected},
		{name: "non_admin_forbidden", actorID: "seller1", auctionID: "pending1", approved: true, wantStatus: model.StatusPending, expectedError: auctionerrors.ErrForbidden},
		{name: "buyer_forbidden", actorID: "buyer1", auctionID: "pending1", approved: true, wantStatus: model.StatusPending, expectedError: auctionerrors.ErrForbidden},
		{name: "unauthenticated", actorID: "", auctionID: "pending1", approved: true, wantStatus: model.StatusPending, expectedError: auctionerrors.ErrUnauthenticated},
		{name: "approve_active_invalid", actorID: "admin", auctionID: "active1", approved: true, wantStatus: model.StatusActive, expectedError: auctionerrors.ErrInvalidTransition},
		{name: "reject_ended_invalid", actorID: "admin", auctionID: "ended1", approved: false, wantStatus: model.StatusEnded, expectedError: auctionerrors.ErrInvalidTransition},
		{name: "unknown_auction", actorID: "admin", auctionID: "missing", approved: true, expectedError: auctionerrors.ErrAuctionNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, ledger, clock := newTestService(t)
			seedUser(ledger, "admin", model.RoleSuperAdmin, "0", 0)
			seedUser(ledger, "seller1", model.RoleSeller, "0", 0)
			seedUser(ledger, "buyer1", model.RoleBuyer, "0", 0)
			future := clock.Now().Add(time.Hour)
			seedAuction(ledger, "pending1", "seller1", model.StatusPending, "100", future)
			seedAuction(ledger, "active1", "seller1", model.StatusActive, "100", future)
			seedAuction(ledger, "ended1", "seller1", model.StatusEnded, "100", clock.Now().Add(-time.Hour))

			updated, err := svc.SetAuctionApproval(context.Background(), tc.actorID, tc.auctionID, tc.approved)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				if tc.auctionID != "missing" {
					require.Equal(t, tc.wantStatus, auctionState(t, ledger, tc.auctionID).Status,
						"failed approval must be a no-op")
				}
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.wantStatus, updated.Status)
			require.Equal(t, tc.approved, updated.IsApproved)

			stored := auctionState(t, ledger, tc.auctionID)
			require.Equal(t, tc.wantStatus, stored.Status)
			require.Equal(t, tc.approved, stored.IsApproved)
		})
	}
}

func TestSetSellerApproval_RevokeCancelsOnlyPending(t *testing.T) {
	t.Parallel()

	svc, ledger, clock := newTestService(t)
	seedUser(ledger, "admin", model.RoleSuperAdmin, "0", 0)
	seedUser(ledger, "seller1", model.RoleSeller, "0", 0)
	future := clock.Now().Add(time.Hour)
	seedAuction(ledger, "pending1", "seller1", model.StatusPending, "10", future)
	seedAuction(ledger, "pending2", "seller1", model.StatusPending, "20", future)
	seedAuction(ledger, "active1", "seller1", model.StatusActive, "30", future)
	seedAuction(ledger, "ended1", "seller1", model.StatusEnded, "40", clock.Now().Add(-time.Hour))

	updated, err := svc.SetSellerApproval(context.Background(), "admin", "seller1", false)
	require.NoError(t, err)
	require.False(t, updated.IsApproved)

	for id, want := range map[string]model.AuctionStatus{
		"pending1": model.StatusCancelled,
		"pending2": model.StatusCancelled,
		"active1":  model.StatusActive, // revocation never touches running auctions
		"ended1":   model.StatusEnded,
	} {
		require.Equal(t, want, auctionState(t, ledger, id).Status, "auction %s", id)
	}

	// Re-approving restores the account but cancelled listings stay cancelled.
	updated, err = svc.SetSellerApproval(context.Background(), "admin", "seller1", true)
	require.NoError(t, err)
	require.True(t, updated.IsApproved)
	require.Equal(t, model.StatusCancelled, auctionState(t, ledger, "pending1").Status)
}

func TestSetSellerApproval_Guards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		actorID       string
		sellerID      string
		expectedError error
	}{
		{name: "non_admin_forbidden", actorID: "seller1", sellerID: "seller1", expectedError: auctionerrors.ErrForbidden},
		{name: "unauthenticated", actorID: "", sellerID: "seller1", expectedError: auctionerrors.ErrUnauthenticated},
		{name: "unknown_seller", actorID: "admin", sellerID: "ghost", expectedError: auctionerrors.ErrUserNotFound},
		{name: "target_not_a_seller", actorID: "admin", sellerID: "buyer1", expectedError: auctionerrors.ErrInvalidInput},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, ledger, _ := newTestService(t)
			seedUser(ledger, "admin", model.RoleSuperAdmin, "0", 0)
			seedUser(ledger, "seller1", model.RoleSeller, "0", 0)
			seedUser(ledger, "buyer1", model.RoleBuyer, "0", 0)

			_, err := svc.SetSellerApproval(context.Background(), tc.actorID, tc.sellerID, true)
			require.ErrorIs(t, err, tc.expectedError)
		})
	}
}

func TestCreateAuction(t *testing.T) {
	t.Parallel()

	svc, ledger, clock := newTestService(t)
	seedUser(ledger, "seller1", model.RoleSeller, "0", 0)
	seedUser(ledger, "buyer1", model.RoleBuyer, "100", 0)
	ledger.AddUser(model.User{UserID: "unapproved_seller", Role: model.RoleSeller, IsApproved: false})

	in := CreateAuctionInput{
		Title:      "Copper scrap, 50kg",
		ItemType:   model.ItemMetal,
		StartPrice: decimal.RequireFromString("100"),
		EndTime:    clock.Now().Add(24 * time.Hour),
	}

	created, err := svc.CreateAuction(context.Background(), "seller1", in)
	require.NoError(t, err)
	require.Equal(t, model.StatusPending, created.Status)
	require.False(t, created.IsApproved)
	require.False(t, created.PointsAwarded)
	requireDecimalEqual(t, "100", created.CurrentPrice)

	stored := auctionState(t, ledger, created.AuctionID)
	require.Equal(t, "seller1", stored.SellerID)
	require.Equal(t, model.StatusPending, stored.Status)

	// Buyers and unapproved sellers cannot list.
	_, err = svc.CreateAuction(context.Background(), "buyer1", in)
	require.ErrorIs(t, err, auctionerrors.ErrForbidden)
	_, err = svc.CreateAuction(context.Background(), "unapproved_seller", in)
	require.ErrorIs(t, err, auctionerrors.ErrForbidden)

	// Input validation.
	bad := in
	bad.Title = "  "
	_, err = svc.CreateAuction(context.Background(), "seller1", bad)
	require.ErrorIs(t, err, auctionerrors.ErrInvalidInput)

	bad = in
	bad.StartPrice = decimal.RequireFromString("0")
	_, err = svc.CreateAuction(context.Background(), "seller1", bad)
	require.ErrorIs(t, err, auctionerrors.ErrInvalidInput)

	bad = in
	bad.EndTime = clock.Now().Add(-time.Minute)
	_, err = svc.CreateAuction(context.Background(), "seller1", bad)
	require.ErrorIs(t, err, auctionerrors.ErrInvalidInput)
}
