package stats_test

import (
	"testing"
	"time"

	"github.com/lowball-ledger/internal/models"
	"github.com/lowball-ledger/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tradeAt(item string, profit int64, at time.Time) models.Trade {
	return models.Trade{
		ItemName:  item,
		Category:  models.CategorySwords,
		NetProfit: profit,
		DateTime:  at,
	}
}

func TestMetricsForWindows(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)

	trades := []models.Trade{
		tradeAt("Hyperion", 10_000_000, now.Add(-1*time.Hour)),        // inside all windows
		tradeAt("Hyperion", 5_000_000, now.Add(-3*24*time.Hour)),      // weekly + monthly
		tradeAt("Necron Chestplate", 2_000_000, now.Add(-10*24*time.Hour)), // monthly only
		tradeAt("Juju Shortbow", 1_000_000, now.Add(-40*24*time.Hour)),     // all-time only
	}

	m := stats.MetricsFor(trades, now)

	assert.Equal(t, int64(18_000_000), m.AllTime)
	assert.Equal(t, int64(10_000_000), m.Daily)
	assert.Equal(t, int64(15_000_000), m.Weekly)
	assert.Equal(t, int64(17_000_000), m.Monthly)
}

func TestMetricsForWindowBoundaryInclusive(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	trades := []models.Trade{
		tradeAt("Hyperion", 1_000_000, now.Add(-24*time.Hour)),
	}

	m := stats.MetricsFor(trades, now)
	assert.Equal(t, int64(1_000_000), m.Daily, "trade exactly at the window edge counts")
}

func TestMetricsForIdempotent(t *testing.T) {
	now := time.Now()
	trades := []models.Trade{
		tradeAt("Hyperion", 10_000_000, now.Add(-time.Hour)),
		tradeAt("Aspect of the Dragons", -500_000, now.Add(-time.Hour)),
	}

	first := stats.MetricsFor(trades, now)
	second := stats.MetricsFor(trades, now)
	assert.Equal(t, first, second)
}

func TestLeaderboardFor(t *testing.T) {
	now := time.Now()
	trades := []models.Trade{
		tradeAt("Hyperion", 10_000_000, now.Add(-3*time.Hour)),
		tradeAt("Hyperion", -2_000_000, now.Add(-2*time.Hour)),
		tradeAt("Hyperion", 5_000_000, now.Add(-1*time.Hour)),
		tradeAt("Necron Chestplate", 4_000_000, now.Add(-4*time.Hour)),
	}

	board := stats.LeaderboardFor(trades)
	require.Len(t, board, 2)

	top := board[0]
	assert.Equal(t, "Hyperion", top.ItemName)
	assert.Equal(t, int64(13_000_000), top.TotalProfit)
	assert.InDelta(t, 4_333_333.33, top.AverageProfit, 0.34)
	assert.Equal(t, 3, top.TradeCount)

	// Trades inside a group come back newest first
	require.Len(t, top.Trades, 3)
	assert.Equal(t, int64(5_000_000), top.Trades[0].NetProfit)
	assert.Equal(t, int64(10_000_000), top.Trades[2].NetProfit)
}

func TestLeaderboardGroupsCaseInsensitive(t *testing.T) {
	now := time.Now()
	trades := []models.Trade{
		tradeAt("Hyperion", 1_000_000, now.Add(-2*time.Hour)),
		tradeAt("hyperion", 2_000_000, now.Add(-1*time.Hour)),
	}

	board := stats.LeaderboardFor(trades)
	require.Len(t, board, 1)
	assert.Equal(t, "Hyperion", board[0].ItemName, "display keeps first-encountered casing")
	assert.Equal(t, int64(3_000_000), board[0].TotalProfit)
}

func TestLeaderboardPreservesTotal(t *testing.T) {
	now := time.Now()
	trades := []models.Trade{
		tradeAt("Hyperion", 10_000_000, now),
		tradeAt("Necron Chestplate", -3_000_000, now),
		tradeAt("Hyperion", 5_000_000, now),
		tradeAt("Juju Shortbow", 750_000, now),
	}

	var want int64
	for _, tr := range trades {
		want += tr.NetProfit
	}

	var got int64
	for _, item := range stats.LeaderboardFor(trades) {
		got += item.TotalProfit
	}
	assert.Equal(t, want, got, "grouping preserves the overall total")
}

func TestLeaderboardSortedDescendingStable(t *testing.T) {
	now := time.Now()
	trades := []models.Trade{
		tradeAt("First Equal", 5_000_000, now),
		tradeAt("Second Equal", 5_000_000, now),
		tradeAt("Winner", 9_000_000, now),
	}

	board := stats.LeaderboardFor(trades)
	require.Len(t, board, 3)

	for i := 1; i < len(board); i++ {
		assert.GreaterOrEqual(t, board[i-1].TotalProfit, board[i].TotalProfit)
	}

	// Equal totals keep first-encountered order
	assert.Equal(t, "Winner", board[0].ItemName)
	assert.Equal(t, "First Equal", board[1].ItemName)
	assert.Equal(t, "Second Equal", board[2].ItemName)
}

func TestTopN(t *testing.T) {
	now := time.Now()
	trades := []models.Trade{
		tradeAt("A", 3, now),
		tradeAt("B", 2, now),
		tradeAt("C", 1, now),
	}
	board := stats.LeaderboardFor(trades)

	assert.Len(t, stats.TopN(board, 2), 2)
	assert.Len(t, stats.TopN(board, 0), 3)
	assert.Len(t, stats.TopN(board, 10), 3)
}

func TestFilterSince(t *testing.T) {
	now := time.Now()
	trades := []models.Trade{
		tradeAt("Old", 1, now.Add(-48*time.Hour)),
		tradeAt("New", 2, now.Add(-1*time.Hour)),
	}

	got := stats.FilterSince(trades, now.Add(-24*time.Hour))
	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].ItemName)
}
