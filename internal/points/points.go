// Package points computes the seller reward for a settled auction.
package points

import "github.com/shopspring/decimal"

const (
	perHundredOfPrice = 1
	perBid            = 20
	volumeBonus       = 200
	volumeThreshold   = 5
)

// Calculate returns the points a seller earns for an auction that closed at
// finalPrice after bidCount accepted bids:
//
//	floor(finalPrice/100) + bidCount*20 + (bidCount >= 5 ? 200 : 0)
//
// Pure and deterministic; never returns a negative value.
func Calculate(finalPrice decimal.Decimal, bidCount int) int64 {
	if bidCount <= 0 {
		return 0
	}

	pts := finalPrice.Div(decimal.NewFromInt(100)).Floor().IntPart() * perHundredOfPrice
	if pts < 0 {
		pts = 0
	}
	pts += int64(bidCount) * perBid
	if bidCount >= volumeThreshold {
		pts += volumeBonus
	}
	return pts
}
