package auction

import (
	"context"
	"sync"
	"testing"
	"time"

	model "github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/models"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/repository"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// testClock is a controllable wall clock for driving end times.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(start time.Time) *testClock {
	return &testClock{now: start}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// newTestService builds a service over a fresh in-memory ledger with a
// controllable clock.
func newTestService(t *testing.T) (*AuctionService, *repository.MemoryLedger, *testClock) {
	t.Helper()
	ledger := repository.NewMemoryLedger()
	clock := newTestClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc := NewAuctionService(ledger, WithClock(clock.Now))
	return svc, ledger, clock
}

func seedUser(ledger *repository.MemoryLedger, id string, role model.Role, amount string, points int64) {
	ledger.AddUser(model.User{
		UserID:     id,
		Role:       role,
		IsApproved: true,
		Amount:     decimal.RequireFromString(amount),
		Points:     points,
	})
}

func seedAuction(ledger *repository.MemoryLedger, id, sellerID string, status model.AuctionStatus, price string, endTime time.Time) {
	ledger.AddAuction(model.Auction{
		AuctionID:    id,
		Title:        id + " title",
		Description:  id + " description",
		ItemType:     model.ItemPlastic,
		SellerID:     sellerID,
		StartPrice:   decimal.RequireFromString(price),
		CurrentPrice: decimal.RequireFromString(price),
		Status:       status,
		IsApproved:   status == model.StatusActive,
		EndTime:      endTime,
		CreatedAt:    endTime.Add(-24 * time.Hour),
	})
}

// seedBid records an accepted bid with its escrow side effects, mirroring
// what PlaceBid commits.
func seedBid(t *testing.T, ledger *repository.MemoryLedger, auctionID, bidderID, amount string, at time.Time) {
	t.Helper()
	amt := decimal.RequireFromString(amount)
	err := ledger.Atomically(context.Background(), func(tx repository.Tx) error {
		a, err := tx.GetAuction(auctionID)
		if err != nil {
			return err
		}
		prev, outbid, err := tx.HighestBid(auctionID)
		if err != nil {
			return err
		}
		if err := tx.CreateBid(model.Bid{
			BidID:     utils.GenerateID(),
			AuctionID: auctionID,
			BidderID:  bidderID,
			Amount:    amt,
			CreatedAt: at,
		}); err != nil {
			return err
		}
		if err := tx.UpdateCurrentPrice(auctionID, a.CurrentPrice, amt); err != nil {
			return err
		}
		if err := tx.AdjustBalance(bidderID, amt.Neg()); err != nil {
			return err
		}
		if outbid {
			return tx.AdjustBalance(prev.BidderID, prev.Amount)
		}
		return nil
	})
	require.NoError(t, err)
}

func balanceOf(t *testing.T, ledger *repository.MemoryLedger, userID string) decimal.Decimal {
	t.Helper()
	u, err := ledger.GetUser(context.Background(), userID)
	require.NoError(t, err)
	return u.Amount
}

func pointsOf(t *testing.T, ledger *repository.MemoryLedger, userID string) int64 {
	t.Helper()
	u, err := ledger.GetUser(context.Background(), userID)
	require.NoError(t, err)
	return u.Points
}

func auctionState(t *testing.T, ledger *repository.MemoryLedger, auctionID string) model.Auction {
	t.Helper()
	a, err := ledger.GetAuction(context.Background(), auctionID)
	require.NoError(t, err)
	return a
}

func requireDecimalEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}
