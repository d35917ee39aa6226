package stats

import (
	"sort"
	"time"

	"github.com/lowball-ledger/internal/models"
)

// Granularity selects the bucket width for time series
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Valid reports whether the granularity is a known value
func (g Granularity) Valid() bool {
	return g == GranularityDay || g == GranularityWeek || g == GranularityMonth
}

// Bucket is one point of a profit-over-time series
type Bucket struct {
	Start      time.Time `json:"start"`
	Label      string    `json:"label"`
	NetProfit  int64     `json:"net_profit"`
	TradeCount int       `json:"trade_count"`
}

// BucketBy groups trades into day, week or month buckets on their trade
// date, sums net profit per bucket and returns buckets ascending by start.
// Weeks start on Sunday; months on the 1st.
func BucketBy(trades []models.Trade, g Granularity) []Bucket {
	byStart := make(map[time.Time]*Bucket)

	for _, t := range trades {
		start := bucketStart(t.DateTime, g)
		b, ok := byStart[start]
		if !ok {
			b = &Bucket{Start: start, Label: bucketLabel(start, g)}
			byStart[start] = b
		}
		b.NetProfit += t.NetProfit
		b.TradeCount++
	}

	buckets := make([]Bucket, 0, len(byStart))
	for _, b := range byStart {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})
	return buckets
}

func bucketStart(t time.Time, g Granularity) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch g {
	case GranularityWeek:
		return day.AddDate(0, 0, -int(day.Weekday()))
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return day
	}
}

func bucketLabel(start time.Time, g Granularity) string {
	if g == GranularityMonth {
		return start.Format("Jan 2006")
	}
	return start.Format("Jan 2")
}

// TradeAverages holds per-trade means over a set of trades
type TradeAverages struct {
	AvgSoldPrice      float64 `json:"avg_sold_price"`
	AvgLowballPercent float64 `json:"avg_lowball_percent"`
	AvgProfitPerTrade float64 `json:"avg_profit_per_trade"`
}

// AveragesFor computes mean sold price, lowball percent and profit per trade
func AveragesFor(trades []models.Trade) TradeAverages {
	if len(trades) == 0 {
		return TradeAverages{}
	}

	var soldPrice, profit int64
	var lowball float64
	for _, t := range trades {
		soldPrice += t.SoldPrice
		lowball += t.LowballPercent
		profit += t.NetProfit
	}

	n := float64(len(trades))
	return TradeAverages{
		AvgSoldPrice:      float64(soldPrice) / n,
		AvgLowballPercent: lowball / n,
		AvgProfitPerTrade: float64(profit) / n,
	}
}

// CategoryProfit is the profit contribution of one item category
type CategoryProfit struct {
	Category   models.Category `json:"category"`
	NetProfit  int64           `json:"net_profit"`
	TradeCount int             `json:"trade_count"`
}

// CategoryBreakdown sums net profit per category, sorted descending by profit
func CategoryBreakdown(trades []models.Trade) []CategoryProfit {
	byCategory := make(map[models.Category]*CategoryProfit)
	var order []models.Category

	for _, t := range trades {
		c, ok := byCategory[t.Category]
		if !ok {
			c = &CategoryProfit{Category: t.Category}
			byCategory[t.Category] = c
			order = append(order, t.Category)
		}
		c.NetProfit += t.NetProfit
		c.TradeCount++
	}

	out := make([]CategoryProfit, 0, len(order))
	for _, cat := range order {
		out = append(out, *byCategory[cat])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NetProfit > out[j].NetProfit
	})
	return out
}
