package auction

import (
	"context"
	"errors"
	"fmt"

	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/auctionerrors"
	model "github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/models"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/points"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/repository"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/utils"
)

// SweepDetail is the per-auction outcome of a settlement pass.
type SweepDetail struct {
	AuctionID     string              `json:"auction_id"`
	Title         string              `json:"title"`
	SellerID      string              `json:"seller_id"`
	BidCount      int                 `json:"bid_count"`
	OldStatus     model.AuctionStatus `json:"old_status"`
	NewStatus     model.AuctionStatus `json:"new_status"`
	PointsAwarded int64               `json:"points_awarded"`
	Error         string              `json:"error,omitempty"`
}

// SweepResult aggregates one settlement pass.
type SweepResult struct {
	Processed          int           `json:"processed"`
	PointsAwarded      int64         `json:"points_awarded"`
	SuccessfulAuctions int           `json:"successful_auctions"`
	NoActivityAuctions int           `json:"no_activity_auctions"`
	Details            []SweepDetail `json:"details"`
}

// ProcessEndedAuctions runs a settlement sweep on behalf of an admin actor.
func (s *AuctionService) ProcessEndedAuctions(ctx context.Context, actorID string) (SweepResult, error) {
	if _, err := s.adminActor(ctx, actorID); err != nil {
		return SweepResult{}, err
	}
	return s.Sweep(ctx)
}

// Sweep finds every auction whose end time has passed and settles it:
// transition to ENDED, credit the winning amount to the seller, award seller
// points. Idempotent: already-settled auctions are never selected, and a
// second sweep racing this one loses the conditional updates and skips.
// One auction's failure is logged and recorded without aborting the rest.
func (s *AuctionService) Sweep(ctx context.Context) (SweepResult, error) {
	due, err := s.ledger.AuctionsDueForSettlement(ctx, s.now())
	if err != nil {
		return SweepResult{}, fmt.Errorf("service: sweep: %w", err)
	}

	result := SweepResult{Details: make([]SweepDetail, 0, len(due))}
	for _, a := range due {
		detail, skipped, err := s.settleOne(ctx, a)
		if skipped {
			continue
		}
		if err != nil {
			detail.Error = err.Error()
			result.Details = append(result.Details, detail)
			utils.Error("auction settlement failed", map[string]any{
				"auction_id": a.AuctionID,
				"error":      err.Error(),
			})
			continue
		}

		result.Processed++
		result.PointsAwarded += detail.PointsAwarded
		if detail.BidCount > 0 {
			result.SuccessfulAuctions++
		} else {
			result.NoActivityAuctions++
		}
		result.Details = append(result.Details, detail)
	}

	utils.Info("settlement sweep finished", map[string]any{
		"processed":            result.Processed,
		"points_awarded":       result.PointsAwarded,
		"successful_auctions":  result.SuccessfulAuctions,
		"no_activity_auctions": result.NoActivityAuctions,
	})
	return result, nil
}

// EndAuction force-ends a single auction whose end time has passed. Allowed
// for the admin and the seller of record; runs the same settlement path as
// the sweep.
func (s *AuctionService) EndAuction(ctx context.Context, actorID, auctionID string) (SweepDetail, error) {
	if actorID == "" {
		return SweepDetail{}, fmt.Errorf("service: end auction: %w", auctionerrors.ErrUnauthenticated)
	}
	actor, err := s.ledger.GetUser(ctx, actorID)
	if err != nil {
		return SweepDetail{}, fmt.Errorf("service: end auction: %w", auctionerrors.ErrUnauthenticated)
	}

	a, err := s.ledger.GetAuction(ctx, auctionID)
	if err != nil {
		return SweepDetail{}, err
	}
	if actor.Role != model.RoleSuperAdmin && actor.UserID != a.SellerID {
		return SweepDetail{}, fmt.Errorf("service: end auction %s: %w", auctionID, auctionerrors.ErrForbidden)
	}
	if s.now().Before(a.EndTime) {
		return SweepDetail{}, fmt.Errorf("service: end auction %s before %s: %w",
			auctionID, a.EndTime, auctionerrors.ErrAuctionNotEnded)
	}
	if a.Status != model.StatusActive && !(a.Status == model.StatusEnded && !a.PointsAwarded) {
		return SweepDetail{}, fmt.Errorf("service: end %s auction %s: %w",
			a.Status, auctionID, auctionerrors.ErrInvalidTransition)
	}

	detail, skipped, err := s.settleOne(ctx, a)
	if skipped {
		return SweepDetail{}, fmt.Errorf("service: end auction %s: %w", auctionID, auctionerrors.ErrAlreadySettled)
	}
	return detail, err
}

// settleOne settles one auction in two atomic units.
//
// Unit 1 flips ACTIVE -> ENDED and, in the same unit, credits the winning
// bid amount (escrowed since placement) to the seller; the conditional
// status flip succeeding is what makes this invocation the owner of the
// fund transfer. Unit 2 awards points guarded by the pointsAwarded
// false -> true flip, so a sweep retried after a points failure picks the
// step up again without re-transitioning status or re-crediting funds.
// Zero-bid auctions flip the flag too, with no points and no transfer.
//
// skipped is true when a concurrent settlement got there first.
func (s *AuctionService) settleOne(ctx context.Context, a model.Auction) (detail SweepDetail, skipped bool, err error) {
	detail = SweepDetail{
		AuctionID: a.AuctionID,
		Title:     a.Title,
		SellerID:  a.SellerID,
		OldStatus: a.Status,
		NewStatus: a.Status,
	}

	if a.Status == model.StatusActive {
		err = s.ledger.Atomically(ctx, func(tx repository.Tx) error {
			cur, err := tx.GetAuction(a.AuctionID)
			if err != nil {
				return err
			}
			if cur.Status != model.StatusActive {
				if cur.Status == model.StatusEnded {
					return nil // lost the transition race; points step may still be ours
				}
				return fmt.Errorf("settle %s auction %s: %w", cur.Status, a.AuctionID, auctionerrors.ErrInvalidTransition)
			}
			if err := tx.TransitionStatus(a.AuctionID, model.StatusActive, model.StatusEnded); err != nil {
				return err
			}
			top, ok, err := tx.HighestBid(a.AuctionID)
			if err != nil {
				return err
			}
			if ok {
				if err := tx.AdjustBalance(cur.SellerID, top.Amount); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return detail, false, err
		}
		detail.NewStatus = model.StatusEnded
	}

	err = s.ledger.Atomically(ctx, func(tx repository.Tx) error {
		cur, err := tx.GetAuction(a.AuctionID)
		if err != nil {
			return err
		}
		if cur.PointsAwarded {
			return fmt.Errorf("settle auction %s: %w", a.AuctionID, auctionerrors.ErrAlreadySettled)
		}

		bidCount, err := tx.CountBids(a.AuctionID)
		if err != nil {
			return err
		}
		detail.BidCount = bidCount

		if bidCount > 0 {
			pts := points.Calculate(cur.CurrentPrice, bidCount)
			if err := tx.AdjustPoints(cur.SellerID, pts); err != nil {
				return err
			}
			detail.PointsAwarded = pts
		}
		return tx.MarkPointsAwarded(a.AuctionID)
	})
	if errors.Is(err, auctionerrors.ErrAlreadySettled) {
		return detail, true, nil
	}
	if err != nil {
		return detail, false, err
	}
	return detail, false, nil
}

// adminActor loads the actor outside any unit of work and verifies the
// SUPER_ADMIN role. Used by operations whose guard does not touch money.
func (s *AuctionService) adminActor(ctx context.Context, actorID string) (model.User, error) {
	if actorID == "" {
		return model.User{}, fmt.Errorf("service: %w", auctionerrors.ErrUnauthenticated)
	}
	actor, err := s.ledger.GetUser(ctx, actorID)
	if err != nil {
		return model.User{}, fmt.Errorf("service: %w", auctionerrors.ErrUnauthenticated)
	}
	if actor.Role != model.RoleSuperAdmin {
		return model.User{}, fmt.Errorf("service: actor %s: %w", actorID, auctionerrors.ErrForbidden)
	}
	return actor, nil
}
