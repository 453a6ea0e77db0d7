package repository

import (
	"context"
	"time"

	model "github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/models"

	"github.com/shopspring/decimal"
)

// Ledger is the persistent store of users, auctions and bids. All money and
// status mutations go through Atomically, which runs fn inside a single
// all-or-nothing unit of work: if fn returns an error nothing it did is
// visible. Two units of work touching the same rows are serialized with
// respect to each other.
type Ledger interface {
	Atomically(ctx context.Context, fn func(tx Tx) error) error

	GetUser(ctx context.Context, id string) (model.User, error)
	GetAuction(ctx context.Context, id string) (model.Auction, error)
	ListAuctions(ctx context.Context, status *model.AuctionStatus) ([]model.Auction, error)
	BidsForAuction(ctx context.Context, auctionID string) ([]model.Bid, error)

	// AuctionsDueForSettlement returns auctions whose end time has passed and
	// that still need settlement work: ACTIVE ones awaiting the ENDED
	// transition, and ENDED ones whose points award has not completed.
	AuctionsDueForSettlement(ctx context.Context, now time.Time) ([]model.Auction, error)
}

// Tx is the view of the ledger inside one atomic unit of work. Row reads
// lock the row for the duration of the unit, and every mutation carries its
// own guard so a stale precondition fails the whole unit instead of being
// silently overwritten.
type Tx interface {
	GetUser(id string) (model.User, error)
	CreateUser(u model.User) error
	// AdjustBalance adds delta (which may be negative) to the user's wallet.
	// Fails with ErrInsufficientFunds if the balance would go negative.
	AdjustBalance(userID string, delta decimal.Decimal) error
	// AdjustPoints adds delta to the user's points balance. Fails with
	// ErrInsufficientPoints if the balance would go negative.
	AdjustPoints(userID string, delta int64) error
	SetUserApproval(userID string, approved bool) error

	GetAuction(id string) (model.Auction, error)
	CreateAuction(a model.Auction) error
	// UpdateCurrentPrice is a compare-and-swap on the auction price: it only
	// succeeds if the stored price still equals expected.
	UpdateCurrentPrice(auctionID string, expected, next decimal.Decimal) error
	// TransitionStatus moves the auction from -> to, failing with
	// ErrInvalidTransition if the stored status is not from or the state
	// machine forbids the move.
	TransitionStatus(auctionID string, from, to model.AuctionStatus) error
	SetAuctionApproval(auctionID string, approved bool) error
	// MarkPointsAwarded flips pointsAwarded false -> true, failing with
	// ErrAlreadySettled if it was already set.
	MarkPointsAwarded(auctionID string) error
	// CancelPendingBySeller transitions every PENDING auction owned by the
	// seller to CANCELLED and returns how many were cancelled.
	CancelPendingBySeller(sellerID string) (int, error)

	CreateBid(b model.Bid) error
	// HighestBid returns the top bid for the auction; ok is false when the
	// auction has no bids.
	HighestBid(auctionID string) (bid model.Bid, ok bool, err error)
	CountBids(auctionID string) (int, error)
}
