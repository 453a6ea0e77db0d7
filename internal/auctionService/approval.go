package auction

import (
	"context"
	"fmt"

	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/auctionerrors"
	model "github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/models"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/repository"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/utils"
)

// SetSellerApproval approves or revokes a seller account. Admin only.
// Revoking additionally cancels every PENDING auction the seller owns, in
// the same atomic unit: a revoked seller cannot have listings awaiting
// approval. ACTIVE auctions are untouched.
func (s *AuctionService) SetSellerApproval(ctx context.Context, actorID, sellerID string, approved bool) (model.User, error) {
	if sellerID == "" {
		return model.User{}, fmt.Errorf("service: %w - empty seller ID", auctionerrors.ErrInvalidInput)
	}

	var updated model.User
	err := s.ledger.Atomically(ctx, func(tx repository.Tx) error {
		if _, err := requireAdmin(tx, actorID); err != nil {
			return err
		}

		seller, err := tx.GetUser(sellerID)
		if err != nil {
			return err
		}
		if seller.Role != model.RoleSeller {
			return fmt.Errorf("service: user %s is not a seller: %w", sellerID, auctionerrors.ErrInvalidInput)
		}

		if err := tx.SetUserApproval(sellerID, approved); err != nil {
			return err
		}
		seller.IsApproved = approved
		updated = seller

		if !approved {
			cancelled, err := tx.CancelPendingBySeller(sellerID)
			if err != nil {
				return err
			}
			if cancelled > 0 {
				utils.Info("cancelled pending auctions of revoked seller", map[string]any{
					"seller_id": sellerID,
					"cancelled": cancelled,
				})
			}
		}
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return updated, nil
}

// SetAuctionApproval approves (PENDING -> ACTIVE) or rejects
// (PENDING -> REJECTED) a listing. Admin only. Auctions not in PENDING fail
// with ErrInvalidTransition and are left untouched.
func (s *AuctionService) SetAuctionApproval(ctx context.Context, actorID, auctionID string, approved bool) (model.Auction, error) {
	if auctionID == "" {
		return model.Auction{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	target := model.StatusRejected
	if approved {
		target = model.StatusActive
	}

	var updated model.Auction
	err := s.ledger.Atomically(ctx, func(tx repository.Tx) error {
		if _, err := requireAdmin(tx, actorID); err != nil {
			return err
		}

		a, err := tx.GetAuction(auctionID)
		if err != nil {
			return err
		}
		if err := tx.TransitionStatus(auctionID, model.StatusPending, target); err != nil {
			return err
		}
		if approved {
			if err := tx.SetAuctionApproval(auctionID, true); err != nil {
				return err
			}
		}
		a.Status = target
		a.IsApproved = approved
		updated = a
		return nil
	})
	if err != nil {
		return model.Auction{}, err
	}
	return updated, nil
}
