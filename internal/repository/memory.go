package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/auctionerrors"
	model "github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/models"

	"github.com/shopspring/decimal"
)

// MemoryLedger is a concurrency-safe in-memory implementation of Ledger.
// Each unit of work runs against a copy of the state under a single mutex
// and is swapped in only on success, which gives the same all-or-nothing and
// serialization guarantees the Postgres backend gets from DB transactions.
// Used as the test backend and for local runs without a database.
type MemoryLedger struct {
	mu       sync.RWMutex
	users    map[string]model.User
	auctions map[string]model.Auction
	bids     map[string][]model.Bid // key: auctionID -> bids in placement order
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		users:    make(map[string]model.User),
		auctions: make(map[string]model.Auction),
		bids:     make(map[string][]model.Bid),
	}
}

// Atomically runs fn against a staged copy of the ledger and commits the
// copy only if fn returns nil.
func (l *MemoryLedger) Atomically(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	tx := &memTx{
		users:    make(map[string]model.User, len(l.users)),
		auctions: make(map[string]model.Auction, len(l.auctions)),
		bids:     make(map[string][]model.Bid, len(l.bids)),
	}
	for id, u := range l.users {
		tx.users[id] = u
	}
	for id, a := range l.auctions {
		tx.auctions[id] = a
	}
	for id, bs := range l.bids {
		tx.bids[id] = bs
	}

	if err := fn(tx); err != nil {
		return err
	}

	l.users, l.auctions, l.bids = tx.users, tx.auctions, tx.bids
	return nil
}

// GetUser returns the user with the given id.
func (l *MemoryLedger) GetUser(ctx context.Context, id string) (model.User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	u, ok := l.users[id]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", id, auctionerrors.ErrUserNotFound)
	}
	return u, nil
}

// GetAuction returns the auction with the given id.
func (l *MemoryLedger) GetAuction(ctx context.Context, id string) (model.Auction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	a, ok := l.auctions[id]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	return a, nil
}

// ListAuctions returns all auctions, optionally filtered by status.
func (l *MemoryLedger) ListAuctions(ctx context.Context, status *model.AuctionStatus) ([]model.Auction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.Auction, 0, len(l.auctions))
	for _, a := range l.auctions {
		if status == nil || a.Status == *status {
			out = append(out, a)
		}
	}
	return out, nil
}

// BidsForAuction returns all bids for an auction in placement order.
func (l *MemoryLedger) BidsForAuction(ctx context.Context, auctionID string) ([]model.Bid, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("bids for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return append([]model.Bid(nil), l.bids[auctionID]...), nil
}

// AuctionsDueForSettlement returns auctions with settlement work outstanding.
func (l *MemoryLedger) AuctionsDueForSettlement(ctx context.Context, now time.Time) ([]model.Auction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var due []model.Auction
	for _, a := range l.auctions {
		if a.EndTime.After(now) {
			continue
		}
		if a.Status == model.StatusActive || (a.Status == model.StatusEnded && !a.PointsAwarded) {
			due = append(due, a)
		}
	}
	return due, nil
}

// AddUser seeds a user directly, bypassing the unit-of-work machinery.
// Intended for tests and local bootstrap.
func (l *MemoryLedger) AddUser(u model.User) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.users[u.UserID] = u
}

// AddAuction seeds an auction directly. Intended for tests and local bootstrap.
func (l *MemoryLedger) AddAuction(a model.Auction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.auctions[a.AuctionID] = a
}

// memTx is the staged state of one in-flight unit of work.
type memTx struct {
	users    map[string]model.User
	auctions map[string]model.Auction
	bids     map[string][]model.Bid
}

func (tx *memTx) GetUser(id string) (model.User, error) {
	u, ok := tx.users[id]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", id, auctionerrors.ErrUserNotFound)
	}
	return u, nil
}

func (tx *memTx) CreateUser(u model.User) error {
	if _, exists := tx.users[u.UserID]; exists {
		return fmt.Errorf("create user %s: %w", u.UserID, auctionerrors.ErrInvalidInput)
	}
	tx.users[u.UserID] = u
	return nil
}

func (tx *memTx) AdjustBalance(userID string, delta decimal.Decimal) error {
	u, ok := tx.users[userID]
	if !ok {
		return fmt.Errorf("adjust balance for user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	next := u.Amount.Add(delta)
	if next.IsNegative() {
		return fmt.Errorf("adjust balance for user %s by %s: %w", userID, delta, auctionerrors.ErrInsufficientFunds)
	}
	u.Amount = next
	tx.users[userID] = u
	return nil
}

func (tx *memTx) AdjustPoints(userID string, delta int64) error {
	u, ok := tx.users[userID]
	if !ok {
		return fmt.Errorf("adjust points for user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	next := u.Points + delta
	if next < 0 {
		return fmt.Errorf("adjust points for user %s by %d: %w", userID, delta, auctionerrors.ErrInsufficientPoints)
	}
	u.Points = next
	tx.users[userID] = u
	return nil
}

func (tx *memTx) SetUserApproval(userID string, approved bool) error {
	u, ok := tx.users[userID]
	if !ok {
		return fmt.Errorf("set approval for user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	u.IsApproved = approved
	tx.users[userID] = u
	return nil
}

func (tx *memTx) GetAuction(id string) (model.Auction, error) {
	a, ok := tx.auctions[id]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	return a, nil
}

func (tx *memTx) CreateAuction(a model.Auction) error {
	if _, exists := tx.auctions[a.AuctionID]; exists {
		return fmt.Errorf("create auction %s: %w", a.AuctionID, auctionerrors.ErrInvalidInput)
	}
	tx.auctions[a.AuctionID] = a
	return nil
}

func (tx *memTx) UpdateCurrentPrice(auctionID string, expected, next decimal.Decimal) error {
	a, ok := tx.auctions[auctionID]
	if !ok {
		return fmt.Errorf("update price for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if !a.CurrentPrice.Equal(expected) {
		return fmt.Errorf("update price for auction %s: stale price %s, stored %s", auctionID, expected, a.CurrentPrice)
	}
	a.CurrentPrice = next
	tx.auctions[auctionID] = a
	return nil
}

func (tx *memTx) TransitionStatus(auctionID string, from, to model.AuctionStatus) error {
	a, ok := tx.auctions[auctionID]
	if !ok {
		return fmt.Errorf("transition auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if a.Status != from || !model.CanTransition(from, to) {
		return fmt.Errorf("transition auction %s from %s to %s (stored %s): %w",
			auctionID, from, to, a.Status, auctionerrors.ErrInvalidTransition)
	}
	a.Status = to
	tx.auctions[auctionID] = a
	return nil
}

func (tx *memTx) SetAuctionApproval(auctionID string, approved bool) error {
	a, ok := tx.auctions[auctionID]
	if !ok {
		return fmt.Errorf("set approval for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	a.IsApproved = approved
	tx.auctions[auctionID] = a
	return nil
}

func (tx *memTx) MarkPointsAwarded(auctionID string) error {
	a, ok := tx.auctions[auctionID]
	if !ok {
		return fmt.Errorf("mark points awarded for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if a.PointsAwarded {
		return fmt.Errorf("mark points awarded for auction %s: %w", auctionID, auctionerrors.ErrAlreadySettled)
	}
	a.PointsAwarded = true
	tx.auctions[auctionID] = a
	return nil
}

func (tx *memTx) CancelPendingBySeller(sellerID string) (int, error) {
	cancelled := 0
	for id, a := range tx.auctions {
		if a.SellerID == sellerID && a.Status == model.StatusPending {
			a.Status = model.StatusCancelled
			tx.auctions[id] = a
			cancelled++
		}
	}
	return cancelled, nil
}

func (tx *memTx) CreateBid(b model.Bid) error {
	if _, ok := tx.auctions[b.AuctionID]; !ok {
		return fmt.Errorf("create bid for auction %s: %w", b.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	// Copy-on-append so a rolled-back unit never leaks into committed state.
	tx.bids[b.AuctionID] = append(append([]model.Bid(nil), tx.bids[b.AuctionID]...), b)
	return nil
}

func (tx *memTx) HighestBid(auctionID string) (model.Bid, bool, error) {
	bids := tx.bids[auctionID]
	if len(bids) == 0 {
		return model.Bid{}, false, nil
	}
	top := bids[0]
	for _, b := range bids[1:] {
		if b.Amount.GreaterThan(top.Amount) {
			top = b
		}
	}
	return top, true, nil
}

func (tx *memTx) CountBids(auctionID string) (int, error) {
	return len(tx.bids[auctionID]), nil
}
