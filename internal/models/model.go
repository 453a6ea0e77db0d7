package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Role identifies what an actor is allowed to do in the marketplace.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleSeller     Role = "SELLER"
	RoleBuyer      Role = "BUYER"
)

// AuctionStatus is the lifecycle state of an auction.
type AuctionStatus string

const (
	StatusPending   AuctionStatus = "PENDING"
	StatusActive    AuctionStatus = "ACTIVE"
	StatusEnded     AuctionStatus = "ENDED"
	StatusRejected  AuctionStatus = "REJECTED"
	StatusCancelled AuctionStatus = "CANCELLED"
)

// Terminal reports whether no further transitions are allowed from s.
func (s AuctionStatus) Terminal() bool {
	return s == StatusEnded || s == StatusRejected || s == StatusCancelled
}

// CanTransition reports whether the lifecycle state machine allows from -> to.
// PENDING may go to ACTIVE (admin approval), REJECTED (admin rejection) or
// CANCELLED (seller approval revoked); ACTIVE may only go to ENDED.
func CanTransition(from, to AuctionStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusActive || to == StatusRejected || to == StatusCancelled
	case StatusActive:
		return to == StatusEnded
	default:
		return false
	}
}

// ItemType categorizes the recyclable material being auctioned.
type ItemType string

const (
	ItemPlastic     ItemType = "PLASTIC"
	ItemPaper       ItemType = "PAPER"
	ItemMetal       ItemType = "METAL"
	ItemGlass       ItemType = "GLASS"
	ItemElectronics ItemType = "ELECTRONICS"
	ItemOther       ItemType = "OTHER"
)

// User is a wallet-holding actor: admin, seller or buyer.
// Amount is the spendable wallet balance; Points is the seller reward
// balance, redeemable into Amount at 10 points per currency unit.
// Both must stay non-negative at all times.
type User struct {
	UserID     string          `db:"id" json:"user_id"`
	Role       Role            `db:"role" json:"role"`
	IsApproved bool            `db:"is_approved" json:"is_approved"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	Points     int64           `db:"points" json:"points"`
}

// Auction is a seller's listing. CurrentPrice tracks the highest accepted
// bid, or StartPrice while there are none. PointsAwarded guards the
// settlement points credit against double-award.
type Auction struct {
	AuctionID     string          `db:"id" json:"auction_id"`
	Title         string          `db:"title" json:"title"`
	Description   string          `db:"description" json:"description"`
	Images        pq.StringArray  `db:"images" json:"images"`
	ItemType      ItemType        `db:"item_type" json:"item_type"`
	SellerID      string          `db:"seller_id" json:"seller_id"`
	StartPrice    decimal.Decimal `db:"start_price" json:"start_price"`
	CurrentPrice  decimal.Decimal `db:"current_price" json:"current_price"`
	Status        AuctionStatus   `db:"status" json:"status"`
	IsApproved    bool            `db:"is_approved" json:"is_approved"`
	EndTime       time.Time       `db:"end_time" json:"end_time"`
	PointsAwarded bool            `db:"points_awarded" json:"points_awarded"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// Bid is an immutable record of one accepted bid.
type Bid struct {
	BidID     string          `db:"id" json:"bid_id"`
	AuctionID string          `db:"auction_id" json:"auction_id"`
	BidderID  string          `db:"bidder_id" json:"bidder_id"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
