package auction

import (
	"context"
	"fmt"

	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/auctionerrors"
	model "github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/models"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/repository"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/utils"

	"github.com/shopspring/decimal"
)

// PlaceBid validates and commits a bid as one atomic unit of work.
//
// Funds are escrowed immediately: the bid amount leaves the bidder's wallet
// on acceptance, and the previous highest bidder is refunded in full in the
// same unit. A buyer's balance therefore always equals cash on hand minus
// the amounts committed to their currently-winning bids.
//
// Every precondition is re-validated inside the unit that writes, so two
// racing bids cannot both validate against the same stale current price.
func (s *AuctionService) PlaceBid(ctx context.Context, actorID, auctionID string, amount decimal.Decimal) (model.Bid, error) {
	if actorID == "" {
		return model.Bid{}, fmt.Errorf("service: place bid: %w", auctionerrors.ErrUnauthenticated)
	}
	if auctionID == "" {
		return model.Bid{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return model.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidInput)
	}

	bid := model.Bid{
		BidID:     utils.GenerateID(),
		AuctionID: auctionID,
		BidderID:  actorID,
		Amount:    amount,
		CreatedAt: s.now(),
	}

	err := s.ledger.Atomically(ctx, func(tx repository.Tx) error {
		bidder, err := tx.GetUser(actorID)
		if err != nil {
			return fmt.Errorf("service: place bid: %w", auctionerrors.ErrUnauthenticated)
		}
		if bidder.Amount.LessThan(amount) {
			return fmt.Errorf("service: place bid of %s with balance %s: %w",
				amount, bidder.Amount, auctionerrors.ErrInsufficientFunds)
		}

		a, err := tx.GetAuction(auctionID)
		if err != nil {
			return err
		}
		if a.Status != model.StatusActive {
			return fmt.Errorf("service: place bid on %s auction: %w", a.Status, auctionerrors.ErrAuctionNotActive)
		}
		if !s.now().Before(a.EndTime) {
			return fmt.Errorf("service: place bid after end time: %w", auctionerrors.ErrAuctionEnded)
		}
		if !amount.GreaterThan(a.CurrentPrice) {
			return fmt.Errorf("service: bid %s against current price %s: %w",
				amount, a.CurrentPrice, auctionerrors.ErrBidTooLow)
		}
		if actorID == a.SellerID {
			return fmt.Errorf("service: place bid: %w", auctionerrors.ErrSelfBid)
		}

		prev, outbid, err := tx.HighestBid(auctionID)
		if err != nil {
			return err
		}

		if err := tx.CreateBid(bid); err != nil {
			return err
		}
		if err := tx.UpdateCurrentPrice(auctionID, a.CurrentPrice, amount); err != nil {
			return err
		}
		if err := tx.AdjustBalance(actorID, amount.Neg()); err != nil {
			return err
		}
		if outbid {
			// Full, immediate refund of the displaced bid.
			if err := tx.AdjustBalance(prev.BidderID, prev.Amount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.Bid{}, err
	}

	utils.Info("bid accepted", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": auctionID,
		"bidder_id":  actorID,
		"amount":     amount.String(),
	})
	return bid, nil
}
