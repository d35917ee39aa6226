package valuation_test

import (
	"testing"

	"github.com/lowball-ledger/internal/valuation"
	"github.com/stretchr/testify/assert"
)

func TestTaxTiers(t *testing.T) {
	tests := []struct {
		name       string
		soldPrice  int64
		wantPct    float64
		wantAmount int64
	}{
		{"low tier", 5_000_000, 2, 100_000},
		{"just under mid tier", 9_999_999, 2, 200_000},
		{"mid tier floor inclusive", 10_000_000, 3, 300_000},
		{"mid tier", 50_000_000, 3, 1_500_000},
		{"mid tier ceiling inclusive", 100_000_000, 3, 3_000_000},
		{"high tier", 100_000_001, 3.5, 3_500_000},
		{"high tier large", 120_000_000, 3.5, 4_200_000},
		{"zero", 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := valuation.Tax(tt.soldPrice)
			assert.Equal(t, tt.wantPct, got.TaxPercent)
			assert.Equal(t, tt.wantAmount, got.TaxAmount)
		})
	}
}

func TestTaxAmountRounds(t *testing.T) {
	// 100,000,001 * 3.5% = 3,500,000.035 rounds down to the nearest coin
	got := valuation.Tax(100_000_001)
	assert.Equal(t, int64(3_500_000), got.TaxAmount)

	// 75 * 2% = 1.5 rounds up
	got = valuation.Tax(75)
	assert.Equal(t, int64(2), got.TaxAmount)
}

func TestProfit(t *testing.T) {
	// 120m sale at 3.5% tax against a 100m basis
	got := valuation.Profit(120_000_000, 100_000_000)
	assert.Equal(t, 3.5, got.TaxPercent)
	assert.Equal(t, int64(4_200_000), got.TaxAmount)
	assert.Equal(t, int64(15_800_000), got.NetProfit)
}

func TestProfitCanBeNegative(t *testing.T) {
	// Selling below the basis is a loss, not an error
	got := valuation.Profit(5_000_000, 8_000_000)
	assert.Equal(t, int64(-3_100_000), got.NetProfit)
}

func TestProfitDegenerateInputs(t *testing.T) {
	got := valuation.Profit(0, 0)
	assert.Equal(t, int64(0), got.NetProfit)

	got = valuation.Profit(0, 1_000_000)
	assert.Equal(t, int64(-1_000_000), got.NetProfit)
}

func TestOpportunity(t *testing.T) {
	// Buy at 80m, sell at 110m over 3 days. 110m sits in the 3.5% tier,
	// so tax is 3,850,000 and profit 26,150,000.
	got := valuation.Opportunity(80_000_000, 110_000_000, 3)
	assert.Equal(t, int64(26_150_000), got.PotentialProfit)
	assert.InDelta(t, 32.6875, got.ROI, 1e-9)
	assert.InDelta(t, 8_716_666.67, got.ProfitVelocity, 0.01)
	assert.Equal(t, 8.7, got.Score)
}

func TestOpportunityNegative(t *testing.T) {
	// Selling below the buy price scores negative across the board
	got := valuation.Opportunity(100_000_000, 50_000_000, 2)
	assert.Equal(t, int64(-51_500_000), got.PotentialProfit)
	assert.InDelta(t, -51.5, got.ROI, 1e-9)
	assert.InDelta(t, -25_750_000, got.ProfitVelocity, 1e-9)
	assert.Equal(t, -25.8, got.Score)
}

func TestOpportunityDefaultsDays(t *testing.T) {
	oneDay := valuation.Opportunity(80_000_000, 110_000_000, 1)
	zeroDays := valuation.Opportunity(80_000_000, 110_000_000, 0)
	assert.Equal(t, oneDay, zeroDays)
}

func TestLowballPercent(t *testing.T) {
	// Paid 80m against a 100m basis: 20% below market
	assert.InDelta(t, 20, valuation.LowballPercent(80_000_000, 100_000_000), 1e-9)

	// Paying over the basis is allowed and goes negative
	assert.InDelta(t, -10, valuation.LowballPercent(110_000_000, 100_000_000), 1e-9)

	// No basis, no percentage
	assert.Equal(t, float64(0), valuation.LowballPercent(50_000_000, 0))
}
