// Package postgres implements the Ledger on PostgreSQL via sqlx.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/auctionerrors"
	model "github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/models"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/repository"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/utils"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// Ledger is the PostgreSQL implementation of repository.Ledger. Units of
// work map to DB transactions; rows read inside a unit are locked with
// SELECT ... FOR UPDATE so two units touching the same auction or wallet are
// serialized by the database.
type Ledger struct {
	db *sqlx.DB
}

// NewLedger creates a Ledger on an open sqlx connection.
func NewLedger(db *sqlx.DB) *Ledger {
	return &Ledger{db: db}
}

// Atomically runs fn inside one DB transaction, committing only if fn
// returns nil.
func (l *Ledger) Atomically(ctx context.Context, fn func(tx repository.Tx) error) error {
	dbTx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(dbTx)

	if err := fn(&pgTx{ctx: ctx, tx: dbTx}); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func rollback(tx *sqlx.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		utils.Error("transaction rollback failed", map[string]any{"error": err.Error()})
	}
}

// GetUser returns the user with the given id.
func (l *Ledger) GetUser(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := l.db.GetContext(ctx, &u,
		`SELECT id, role, is_approved, amount, points FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("get user %s: %w", id, auctionerrors.ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

// GetAuction returns the auction with the given id.
func (l *Ledger) GetAuction(ctx context.Context, id string) (model.Auction, error) {
	var a model.Auction
	err := l.db.GetContext(ctx, &a, selectAuction+` WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", id, err)
	}
	return a, nil
}

// ListAuctions returns all auctions, optionally filtered by status.
func (l *Ledger) ListAuctions(ctx context.Context, status *model.AuctionStatus) ([]model.Auction, error) {
	var (
		auctions []model.Auction
		err      error
	)
	if status != nil {
		err = l.db.SelectContext(ctx, &auctions, selectAuction+` WHERE status = $1 ORDER BY created_at DESC`, *status)
	} else {
		err = l.db.SelectContext(ctx, &auctions, selectAuction+` ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	return auctions, nil
}

// BidsForAuction returns all bids for an auction in placement order.
func (l *Ledger) BidsForAuction(ctx context.Context, auctionID string) ([]model.Bid, error) {
	if _, err := l.GetAuction(ctx, auctionID); err != nil {
		return nil, err
	}
	var bids []model.Bid
	err := l.db.SelectContext(ctx, &bids,
		`SELECT id, auction_id, bidder_id, amount, created_at
		   FROM bids WHERE auction_id = $1 ORDER BY created_at ASC`, auctionID)
	if err != nil {
		return nil, fmt.Errorf("bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

// AuctionsDueForSettlement returns auctions with settlement work outstanding:
// expired ACTIVE ones, plus ENDED ones whose points step has not completed.
// REJECTED and CANCELLED auctions are never selected.
func (l *Ledger) AuctionsDueForSettlement(ctx context.Context, now time.Time) ([]model.Auction, error) {
	var auctions []model.Auction
	err := l.db.SelectContext(ctx, &auctions, selectAuction+`
		 WHERE end_time <= $1
		   AND (status = $2 OR (status = $3 AND points_awarded = FALSE))
		 ORDER BY end_time ASC`,
		now, model.StatusActive, model.StatusEnded)
	if err != nil {
		return nil, fmt.Errorf("auctions due for settlement: %w", err)
	}
	return auctions, nil
}

const selectAuction = `
	SELECT id, title, description, images, item_type, seller_id,
	       start_price, current_price, status, is_approved, end_time,
	       points_awarded, created_at
	  FROM auctions`

// pgTx is one in-flight unit of work.
type pgTx struct {
	ctx context.Context
	tx  *sqlx.Tx
}

func (t *pgTx) GetUser(id string) (model.User, error) {
	var u model.User
	err := t.tx.GetContext(t.ctx, &u,
		`SELECT id, role, is_approved, amount, points FROM users WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("get user %s: %w", id, auctionerrors.ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

func (t *pgTx) CreateUser(u model.User) error {
	_, err := t.tx.ExecContext(t.ctx,
		`INSERT INTO users (id, role, is_approved, amount, points) VALUES ($1, $2, $3, $4, $5)`,
		u.UserID, u.Role, u.IsApproved, u.Amount, u.Points)
	if err != nil {
		return fmt.Errorf("create user %s: %w", u.UserID, err)
	}
	return nil
}

// AdjustBalance applies the delta with the non-negativity guard in the same
// statement; zero rows affected means the balance would have gone negative
// (or the user is missing), so nothing was written.
func (t *pgTx) AdjustBalance(userID string, delta decimal.Decimal) error {
	res, err := t.tx.ExecContext(t.ctx,
		`UPDATE users SET amount = amount + $1 WHERE id = $2 AND amount + $1 >= 0`,
		delta, userID)
	if err != nil {
		return fmt.Errorf("adjust balance for user %s: %w", userID, err)
	}
	if affected(res) == 0 {
		if !t.userExists(userID) {
			return fmt.Errorf("adjust balance for user %s: %w", userID, auctionerrors.ErrUserNotFound)
		}
		return fmt.Errorf("adjust balance for user %s by %s: %w", userID, delta, auctionerrors.ErrInsufficientFunds)
	}
	return nil
}

func (t *pgTx) AdjustPoints(userID string, delta int64) error {
	res, err := t.tx.ExecContext(t.ctx,
		`UPDATE users SET points = points + $1 WHERE id = $2 AND points + $1 >= 0`,
		delta, userID)
	if err != nil {
		return fmt.Errorf("adjust points for user %s: %w", userID, err)
	}
	if affected(res) == 0 {
		if !t.userExists(userID) {
			return fmt.Errorf("adjust points for user %s: %w", userID, auctionerrors.ErrUserNotFound)
		}
		return fmt.Errorf("adjust points for user %s by %d: %w", userID, delta, auctionerrors.ErrInsufficientPoints)
	}
	return nil
}

func (t *pgTx) SetUserApproval(userID string, approved bool) error {
	res, err := t.tx.ExecContext(t.ctx,
		`UPDATE users SET is_approved = $1 WHERE id = $2`, approved, userID)
	if err != nil {
		return fmt.Errorf("set approval for user %s: %w", userID, err)
	}
	if affected(res) == 0 {
		return fmt.Errorf("set approval for user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	return nil
}

func (t *pgTx) GetAuction(id string) (model.Auction, error) {
	var a model.Auction
	err := t.tx.GetContext(t.ctx, &a, selectAuction+` WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", id, err)
	}
	return a, nil
}

func (t *pgTx) CreateAuction(a model.Auction) error {
	_, err := t.tx.ExecContext(t.ctx,
		`INSERT INTO auctions
		   (id, title, description, images, item_type, seller_id, start_price,
		    current_price, status, is_approved, end_time, points_awarded, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		a.AuctionID, a.Title, a.Description, a.Images, a.ItemType, a.SellerID,
		a.StartPrice, a.CurrentPrice, a.Status, a.IsApproved, a.EndTime,
		a.PointsAwarded, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create auction %s: %w", a.AuctionID, err)
	}
	return nil
}

func (t *pgTx) UpdateCurrentPrice(auctionID string, expected, next decimal.Decimal) error {
	res, err := t.tx.ExecContext(t.ctx,
		`UPDATE auctions SET current_price = $1 WHERE id = $2 AND current_price = $3`,
		next, auctionID, expected)
	if err != nil {
		return fmt.Errorf("update price for auction %s: %w", auctionID, err)
	}
	if affected(res) == 0 {
		return fmt.Errorf("update price for auction %s: stale price %s", auctionID, expected)
	}
	return nil
}

func (t *pgTx) TransitionStatus(auctionID string, from, to model.AuctionStatus) error {
	if !model.CanTransition(from, to) {
		return fmt.Errorf("transition auction %s from %s to %s: %w",
			auctionID, from, to, auctionerrors.ErrInvalidTransition)
	}
	res, err := t.tx.ExecContext(t.ctx,
		`UPDATE auctions SET status = $1 WHERE id = $2 AND status = $3`,
		to, auctionID, from)
	if err != nil {
		return fmt.Errorf("transition auction %s: %w", auctionID, err)
	}
	if affected(res) == 0 {
		return fmt.Errorf("transition auction %s from %s to %s: %w",
			auctionID, from, to, auctionerrors.ErrInvalidTransition)
	}
	return nil
}

func (t *pgTx) SetAuctionApproval(auctionID string, approved bool) error {
	res, err := t.tx.ExecContext(t.ctx,
		`UPDATE auctions SET is_approved = $1 WHERE id = $2`, approved, auctionID)
	if err != nil {
		return fmt.Errorf("set approval for auction %s: %w", auctionID, err)
	}
	if affected(res) == 0 {
		return fmt.Errorf("set approval for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return nil
}

func (t *pgTx) MarkPointsAwarded(auctionID string) error {
	res, err := t.tx.ExecContext(t.ctx,
		`UPDATE auctions SET points_awarded = TRUE WHERE id = $1 AND points_awarded = FALSE`,
		auctionID)
	if err != nil {
		return fmt.Errorf("mark points awarded for auction %s: %w", auctionID, err)
	}
	if affected(res) == 0 {
		return fmt.Errorf("mark points awarded for auction %s: %w", auctionID, auctionerrors.ErrAlreadySettled)
	}
	return nil
}

func (t *pgTx) CancelPendingBySeller(sellerID string) (int, error) {
	res, err := t.tx.ExecContext(t.ctx,
		`UPDATE auctions SET status = $1 WHERE seller_id = $2 AND status = $3`,
		model.StatusCancelled, sellerID, model.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("cancel pending auctions for seller %s: %w", sellerID, err)
	}
	return int(affected(res)), nil
}

func (t *pgTx) CreateBid(b model.Bid) error {
	_, err := t.tx.ExecContext(t.ctx,
		`INSERT INTO bids (id, auction_id, bidder_id, amount, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		b.BidID, b.AuctionID, b.BidderID, b.Amount, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("create bid for auction %s: %w", b.AuctionID, err)
	}
	return nil
}

func (t *pgTx) HighestBid(auctionID string) (model.Bid, bool, error) {
	var b model.Bid
	err := t.tx.GetContext(t.ctx, &b,
		`SELECT id, auction_id, bidder_id, amount, created_at
		   FROM bids WHERE auction_id = $1
		  ORDER BY amount DESC, created_at ASC LIMIT 1`, auctionID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bid{}, false, nil
	}
	if err != nil {
		return model.Bid{}, false, fmt.Errorf("highest bid for auction %s: %w", auctionID, err)
	}
	return b, true, nil
}

func (t *pgTx) CountBids(auctionID string) (int, error) {
	var n int
	err := t.tx.GetContext(t.ctx, &n,
		`SELECT COUNT(*) FROM bids WHERE auction_id = $1`, auctionID)
	if err != nil {
		return 0, fmt.Errorf("count bids for auction %s: %w", auctionID, err)
	}
	return n, nil
}

func (t *pgTx) userExists(id string) bool {
	var exists bool
	if err := t.tx.GetContext(t.ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id); err != nil {
		return false
	}
	return exists
}

func affected(res sql.Result) int64 {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}
