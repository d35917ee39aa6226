// Package valuation implements the auction-house tax schedule and the
// profit/lowball math applied to every trade at save time. All functions are
// pure and total; input validation belongs to the callers.
package valuation

import "math"

// Auction-house tax tiers by sale price.
const (
	tierMidFloor  = 10_000_000
	tierHighFloor = 100_000_000

	rateLow  = 2.0
	rateMid  = 3.0
	rateHigh = 3.5
)

// TaxResult holds the applicable tax tier and absolute tax for a sale.
type TaxResult struct {
	TaxPercent float64 `json:"tax_percent"`
	TaxAmount  int64   `json:"tax_amount"`
}

// ProfitResult extends TaxResult with the net profit after tax and cost basis.
type ProfitResult struct {
	TaxPercent float64 `json:"tax_percent"`
	TaxAmount  int64   `json:"tax_amount"`
	NetProfit  int64   `json:"net_profit"`
}

// Tax returns the auction-house tax for a sale price.
// Tiers: under 10m at 2%, 10m through 100m inclusive at 3%, above 100m at
// 3.5%. The absolute amount is rounded to the nearest whole coin.
func Tax(soldPrice int64) TaxResult {
	var percent float64
	switch {
	case soldPrice < tierMidFloor:
		percent = rateLow
	case soldPrice <= tierHighFloor:
		percent = rateMid
	default:
		percent = rateHigh
	}

	amount := int64(math.Round(float64(soldPrice) * percent / 100))

	return TaxResult{TaxPercent: percent, TaxAmount: amount}
}

// Profit computes net profit for a sale against a cost basis:
// soldPrice minus tax minus costBasis. The result may be negative; a loss is
// meaningful, not an error.
func Profit(soldPrice, costBasis int64) ProfitResult {
	tax := Tax(soldPrice)
	net := soldPrice - tax.TaxAmount - costBasis

	return ProfitResult{
		TaxPercent: tax.TaxPercent,
		TaxAmount:  tax.TaxAmount,
		NetProfit:  net,
	}
}

// OpportunityResult scores a prospective flip before any coins move.
type OpportunityResult struct {
	PotentialProfit int64   `json:"potential_profit"`
	ROI             float64 `json:"roi"`
	ProfitVelocity  float64 `json:"profit_velocity"`
	Score           float64 `json:"score"`
}

// Opportunity evaluates a prospective flip. Potential profit is the after-tax
// sell price minus the buy price, ROI is profit over the buy price, velocity
// is profit per estimated day to sell, and the score is velocity in millions
// of coins per day to one decimal. estimatedDays below 1 counts as 1.
func Opportunity(buyPrice, sellPrice int64, estimatedDays int) OpportunityResult {
	if estimatedDays < 1 {
		estimatedDays = 1
	}

	tax := Tax(sellPrice)
	profit := sellPrice - tax.TaxAmount - buyPrice
	velocity := float64(profit) / float64(estimatedDays)

	return OpportunityResult{
		PotentialProfit: profit,
		ROI:             float64(profit) / float64(buyPrice) * 100,
		ProfitVelocity:  velocity,
		Score:           math.Round(velocity/1_000_000*10) / 10,
	}
}

// LowballPercent is the discount achieved below the reference basis:
// 100 - pricePaid/basis*100. Unclamped, so paying over the basis yields a
// negative percentage. A zero basis yields 0.
func LowballPercent(pricePaid, basisValue int64) float64 {
	if basisValue <= 0 {
		return 0
	}
	return 100 - float64(pricePaid)/float64(basisValue)*100
}
