package stats_test

import (
	"testing"
	"time"

	"github.com/lowball-ledger/internal/models"
	"github.com/lowball-ledger/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketByDay(t *testing.T) {
	day1 := time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 8, 11, 21, 0, 0, 0, time.UTC)

	trades := []models.Trade{
		tradeAt("Hyperion", 1_000_000, day1),
		tradeAt("Hyperion", 2_000_000, day1.Add(5*time.Hour)),
		tradeAt("Juju Shortbow", 4_000_000, day2),
	}

	buckets := stats.BucketBy(trades, stats.GranularityDay)
	require.Len(t, buckets, 2)

	assert.Equal(t, time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC), buckets[0].Start)
	assert.Equal(t, int64(3_000_000), buckets[0].NetProfit)
	assert.Equal(t, 2, buckets[0].TradeCount)

	assert.Equal(t, int64(4_000_000), buckets[1].NetProfit)
	assert.True(t, buckets[0].Start.Before(buckets[1].Start), "buckets sorted ascending")
}

func TestBucketByWeekStartsSunday(t *testing.T) {
	// 2025-08-13 is a Wednesday; its week starts Sunday 2025-08-10
	wednesday := time.Date(2025, 8, 13, 15, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 8, 10, 2, 0, 0, 0, time.UTC)

	trades := []models.Trade{
		tradeAt("Hyperion", 1_000_000, wednesday),
		tradeAt("Hyperion", 2_000_000, sunday),
	}

	buckets := stats.BucketBy(trades, stats.GranularityWeek)
	require.Len(t, buckets, 1)
	assert.Equal(t, time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC), buckets[0].Start)
	assert.Equal(t, int64(3_000_000), buckets[0].NetProfit)
}

func TestBucketByMonth(t *testing.T) {
	trades := []models.Trade{
		tradeAt("Hyperion", 1_000_000, time.Date(2025, 7, 31, 23, 0, 0, 0, time.UTC)),
		tradeAt("Hyperion", 2_000_000, time.Date(2025, 8, 1, 0, 30, 0, 0, time.UTC)),
		tradeAt("Hyperion", 4_000_000, time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)),
	}

	buckets := stats.BucketBy(trades, stats.GranularityMonth)
	require.Len(t, buckets, 2)

	assert.Equal(t, "Jul 2025", buckets[0].Label)
	assert.Equal(t, int64(1_000_000), buckets[0].NetProfit)
	assert.Equal(t, "Aug 2025", buckets[1].Label)
	assert.Equal(t, int64(6_000_000), buckets[1].NetProfit)
}

func TestAveragesFor(t *testing.T) {
	trades := []models.Trade{
		{SoldPrice: 10_000_000, LowballPercent: 20, NetProfit: 2_000_000},
		{SoldPrice: 20_000_000, LowballPercent: 10, NetProfit: 4_000_000},
	}

	a := stats.AveragesFor(trades)
	assert.InDelta(t, 15_000_000, a.AvgSoldPrice, 1e-9)
	assert.InDelta(t, 15, a.AvgLowballPercent, 1e-9)
	assert.InDelta(t, 3_000_000, a.AvgProfitPerTrade, 1e-9)
}

func TestAveragesForEmpty(t *testing.T) {
	a := stats.AveragesFor(nil)
	assert.Equal(t, stats.TradeAverages{}, a)
}

func TestCategoryBreakdown(t *testing.T) {
	now := time.Now()
	trades := []models.Trade{
		{ItemName: "Hyperion", Category: models.CategorySwords, NetProfit: 5_000_000, DateTime: now},
		{ItemName: "Necron Chestplate", Category: models.CategoryArmors, NetProfit: 8_000_000, DateTime: now},
		{ItemName: "Valkyrie", Category: models.CategorySwords, NetProfit: 2_000_000, DateTime: now},
	}

	breakdown := stats.CategoryBreakdown(trades)
	require.Len(t, breakdown, 2)

	assert.Equal(t, models.CategoryArmors, breakdown[0].Category)
	assert.Equal(t, int64(8_000_000), breakdown[0].NetProfit)
	assert.Equal(t, models.CategorySwords, breakdown[1].Category)
	assert.Equal(t, int64(7_000_000), breakdown[1].NetProfit)
	assert.Equal(t, 2, breakdown[1].TradeCount)
}
