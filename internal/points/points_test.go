package points

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		price    string
		bidCount int
		want     int64
	}{
		{name: "five_bids_with_bonus", price: "550", bidCount: 5, want: 305},
		{name: "two_bids_no_bonus", price: "200", bidCount: 2, want: 42},
		{name: "single_bid_small_price", price: "99.99", bidCount: 1, want: 20},
		{name: "price_exact_hundred", price: "100", bidCount: 1, want: 21},
		{name: "no_bids_no_points", price: "10000", bidCount: 0, want: 0},
		{name: "negative_bid_count", price: "500", bidCount: -3, want: 0},
		{name: "bonus_threshold_boundary", price: "0", bidCount: 4, want: 80},
		{name: "just_above_threshold", price: "0", bidCount: 6, want: 320},
		{name: "large_price", price: "123456.78", bidCount: 10, want: 1234 + 200 + 200},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Calculate(decimal.RequireFromString(tc.price), tc.bidCount)
			require.Equal(t, tc.want, got)
			require.GreaterOrEqual(t, got, int64(0))

			// Stable under repeated invocation.
			require.Equal(t, got, Calculate(decimal.RequireFromString(tc.price), tc.bidCount))
		})
	}
}
