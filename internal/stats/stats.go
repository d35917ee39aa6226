// Package stats computes derived metrics over trade collections: sliding
// profit windows, per-item leaderboards and time-bucketed series. Every
// function is pure; callers pass the trade slice and the reference time in
// explicitly so results are reproducible.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/lowball-ledger/internal/models"
)

// ProfitMetrics holds net profit sums over sliding windows ending at now
type ProfitMetrics struct {
	AllTime int64 `json:"all_time"`
	Daily   int64 `json:"daily"`
	Weekly  int64 `json:"weekly"`
	Monthly int64 `json:"monthly"`
}

// LeaderboardItem ranks one item name by aggregate profit
type LeaderboardItem struct {
	ItemName      string         `json:"item_name"`
	TotalProfit   int64          `json:"total_profit"`
	AverageProfit float64        `json:"average_profit"`
	TradeCount    int            `json:"trade_count"`
	Trades        []models.Trade `json:"trades"`
}

// MetricsFor sums net profit over the all-time, rolling 24h, 7d and 30d
// windows. Windows slide relative to now; the monthly window is rolling 30
// days, not the calendar month.
func MetricsFor(trades []models.Trade, now time.Time) ProfitMetrics {
	dayAgo := now.Add(-24 * time.Hour)
	weekAgo := now.Add(-7 * 24 * time.Hour)
	monthAgo := now.Add(-30 * 24 * time.Hour)

	var m ProfitMetrics
	for _, t := range trades {
		m.AllTime += t.NetProfit
		if !t.DateTime.Before(dayAgo) {
			m.Daily += t.NetProfit
		}
		if !t.DateTime.Before(weekAgo) {
			m.Weekly += t.NetProfit
		}
		if !t.DateTime.Before(monthAgo) {
			m.Monthly += t.NetProfit
		}
	}
	return m
}

// LeaderboardFor groups trades by item name (case-insensitive, displaying the
// first-encountered casing), totals their profit and sorts descending by
// total. Ties keep first-encountered order. Trades inside a group are sorted
// newest first.
func LeaderboardFor(trades []models.Trade) []LeaderboardItem {
	groups := make(map[string][]models.Trade)
	var order []string

	for _, t := range trades {
		key := strings.ToLower(t.ItemName)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], t)
	}

	items := make([]LeaderboardItem, 0, len(order))
	for _, key := range order {
		group := groups[key]

		var total int64
		for _, t := range group {
			total += t.NetProfit
		}

		sorted := make([]models.Trade, len(group))
		copy(sorted, group)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].DateTime.After(sorted[j].DateTime)
		})

		items = append(items, LeaderboardItem{
			ItemName:      group[0].ItemName,
			TotalProfit:   total,
			AverageProfit: float64(total) / float64(len(group)),
			TradeCount:    len(group),
			Trades:        sorted,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].TotalProfit > items[j].TotalProfit
	})

	return items
}

// TopN returns the first n leaderboard entries. n <= 0 means all.
func TopN(leaderboard []LeaderboardItem, n int) []LeaderboardItem {
	if n <= 0 || n >= len(leaderboard) {
		return leaderboard
	}
	return leaderboard[:n]
}

// FilterSince returns the trades dated at or after the cutoff
func FilterSince(trades []models.Trade, cutoff time.Time) []models.Trade {
	var out []models.Trade
	for _, t := range trades {
		if !t.DateTime.Before(cutoff) {
			out = append(out, t)
		}
	}
	return out
}
