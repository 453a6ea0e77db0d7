// Package auction implements the marketplace core: the bid placement
// protocol, the auction lifecycle state machine, the settlement sweep, and
// the admin approval and wallet operations. Every mutation runs as one
// atomic unit of work against the ledger, re-validating its preconditions
// inside that unit.
package auction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/auctionerrors"
	model "github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/models"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/repository"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/utils"

	"github.com/shopspring/decimal"
)

// AuctionService is the business-logic layer over the ledger.
type AuctionService struct {
	ledger repository.Ledger
	now    func() time.Time
}

// Option configures an AuctionService.
type Option func(*AuctionService)

// WithClock overrides the wall clock, used by tests to control end times.
func WithClock(now func() time.Time) Option {
	return func(s *AuctionService) { s.now = now }
}

// NewAuctionService creates a new AuctionService instance.
func NewAuctionService(ledger repository.Ledger, opts ...Option) *AuctionService {
	s := &AuctionService{
		ledger: ledger,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateAuctionInput is the seller-supplied part of a new listing.
type CreateAuctionInput struct {
	Title       string
	Description string
	Images      []string
	ItemType    model.ItemType
	StartPrice  decimal.Decimal
	EndTime     time.Time
}

// CreateAuction creates a PENDING listing for an approved seller.
func (s *AuctionService) CreateAuction(ctx context.Context, actorID string, in CreateAuctionInput) (model.Auction, error) {
	if actorID == "" {
		return model.Auction{}, fmt.Errorf("service: create auction: %w", auctionerrors.ErrUnauthenticated)
	}
	if strings.TrimSpace(in.Title) == "" {
		return model.Auction{}, fmt.Errorf("service: %w - title is required", auctionerrors.ErrInvalidInput)
	}
	if !in.StartPrice.IsPositive() {
		return model.Auction{}, fmt.Errorf("service: %w - start price must be positive", auctionerrors.ErrInvalidInput)
	}
	if !in.EndTime.After(s.now()) {
		return model.Auction{}, fmt.Errorf("service: %w - end time must be in the future", auctionerrors.ErrInvalidInput)
	}
	if in.ItemType == "" {
		in.ItemType = model.ItemOther
	}

	created := model.Auction{
		AuctionID:    utils.GenerateID(),
		Title:        in.Title,
		Description:  in.Description,
		Images:       append([]string(nil), in.Images...),
		ItemType:     in.ItemType,
		SellerID:     actorID,
		StartPrice:   in.StartPrice,
		CurrentPrice: in.StartPrice,
		Status:       model.StatusPending,
		EndTime:      in.EndTime.UTC(),
		CreatedAt:    s.now(),
	}

	err := s.ledger.Atomically(ctx, func(tx repository.Tx) error {
		seller, err := tx.GetUser(actorID)
		if err != nil {
			return fmt.Errorf("service: create auction: %w", auctionerrors.ErrUnauthenticated)
		}
		if seller.Role != model.RoleSeller || !seller.IsApproved {
			return fmt.Errorf("service: create auction: %w", auctionerrors.ErrForbidden)
		}
		return tx.CreateAuction(created)
	})
	if err != nil {
		return model.Auction{}, err
	}
	return created, nil
}

// GetAuction returns a single auction.
func (s *AuctionService) GetAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	if auctionID == "" {
		return model.Auction{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}
	return s.ledger.GetAuction(ctx, auctionID)
}

// ListAuctions returns auctions, optionally filtered by status. Display
// concern only; settlement never consumes this.
func (s *AuctionService) ListAuctions(ctx context.Context, status *model.AuctionStatus) ([]model.Auction, error) {
	return s.ledger.ListAuctions(ctx, status)
}

// GetBidsForAuction returns all bids for a specific auction.
func (s *AuctionService) GetBidsForAuction(ctx context.Context, auctionID string) ([]model.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}
	return s.ledger.BidsForAuction(ctx, auctionID)
}

// GetUser returns a user's wallet record.
func (s *AuctionService) GetUser(ctx context.Context, userID string) (model.User, error) {
	if userID == "" {
		return model.User{}, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}
	return s.ledger.GetUser(ctx, userID)
}

// requireAdmin loads the actor inside the current unit of work and verifies
// the SUPER_ADMIN role.
func requireAdmin(tx repository.Tx, actorID string) (model.User, error) {
	if actorID == "" {
		return model.User{}, fmt.Errorf("service: %w", auctionerrors.ErrUnauthenticated)
	}
	actor, err := tx.GetUser(actorID)
	if err != nil {
		return model.User{}, fmt.Errorf("service: %w", auctionerrors.ErrUnauthenticated)
	}
	if actor.Role != model.RoleSuperAdmin {
		return model.User{}, fmt.Errorf("service: actor %s: %w", actorID, auctionerrors.ErrForbidden)
	}
	return actor, nil
}
