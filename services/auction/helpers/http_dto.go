package helpers

import (
	"time"

	model "github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/models"

	"github.com/shopspring/decimal"
)

// Request DTOs
type CreateAuctionRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	ItemType    model.ItemType  `json:"item_type"`
	StartPrice  decimal.Decimal `json:"start_price" binding:"required"`
	EndTime     time.Time       `json:"end_time" binding:"required"`
}

type PlaceBidRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type ApprovalRequest struct {
	Type     string `json:"type" binding:"required,oneof=seller auction"`
	ID       string `json:"id" binding:"required"`
	Approved *bool  `json:"approved" binding:"required"`
}

type AddFundsRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type RedeemPointsRequest struct {
	Points int64 `json:"points" binding:"required,gt=0"`
}

// Response DTOs
type BidResponse struct {
	BidID     string          `json:"bid_id"`
	AuctionID string          `json:"auction_id"`
	BidderID  string          `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt string          `json:"created_at"`
}

// NewBidResponse maps a domain bid to its wire form.
func NewBidResponse(b model.Bid) BidResponse {
	return BidResponse{
		BidID:     b.BidID,
		AuctionID: b.AuctionID,
		BidderID:  b.BidderID,
		Amount:    b.Amount,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
