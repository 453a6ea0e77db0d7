package auction

import (
	"context"
	"fmt"

	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/auctionerrors"
	model "github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/models"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/repository"

	"github.com/shopspring/decimal"
)

// PointsPerCurrencyUnit is the fixed redemption rate: 10 points buy 1
// currency unit of wallet balance.
const PointsPerCurrencyUnit = 10

// AddFunds credits a user's wallet. Admin only.
func (s *AuctionService) AddFunds(ctx context.Context, actorID, userID string, amount decimal.Decimal) (model.User, error) {
	if userID == "" {
		return model.User{}, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return model.User{}, fmt.Errorf("service: %w - funding amount must be positive", auctionerrors.ErrInvalidInput)
	}

	var updated model.User
	err := s.ledger.Atomically(ctx, func(tx repository.Tx) error {
		if _, err := requireAdmin(tx, actorID); err != nil {
			return err
		}
		u, err := tx.GetUser(userID)
		if err != nil {
			return err
		}
		if err := tx.AdjustBalance(userID, amount); err != nil {
			return err
		}
		u.Amount = u.Amount.Add(amount)
		updated = u
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return updated, nil
}

// RedeemPoints converts part of a seller's points balance into wallet funds
// at PointsPerCurrencyUnit, atomically debiting points and crediting the
// wallet. Admin only; fails with ErrInsufficientPoints if pts exceeds the
// seller's balance.
func (s *AuctionService) RedeemPoints(ctx context.Context, actorID, sellerID string, pts int64) (model.User, error) {
	if sellerID == "" {
		return model.User{}, fmt.Errorf("service: %w - empty seller ID", auctionerrors.ErrInvalidInput)
	}
	if pts <= 0 {
		return model.User{}, fmt.Errorf("service: %w - points to redeem must be positive", auctionerrors.ErrInvalidInput)
	}

	credit := decimal.NewFromInt(pts).Div(decimal.NewFromInt(PointsPerCurrencyUnit))

	var updated model.User
	err := s.ledger.Atomically(ctx, func(tx repository.Tx) error {
		if _, err := requireAdmin(tx, actorID); err != nil {
			return err
		}
		seller, err := tx.GetUser(sellerID)
		if err != nil {
			return err
		}
		if seller.Points < pts {
			return fmt.Errorf("service: redeem %d points with balance %d: %w",
				pts, seller.Points, auctionerrors.ErrInsufficientPoints)
		}
		if err := tx.AdjustPoints(sellerID, -pts); err != nil {
			return err
		}
		if err := tx.AdjustBalance(sellerID, credit); err != nil {
			return err
		}
		seller.Points -= pts
		seller.Amount = seller.Amount.Add(credit)
		updated = seller
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return updated, nil
}
