package stats_test

import (
	"testing"
	"time"

	"github.com/lowball-ledger/internal/models"
	"github.com/lowball-ledger/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashFlowFor(t *testing.T) {
	now := time.Date(2025, 8, 15, 18, 0, 0, 0, time.UTC)

	trades := []models.Trade{
		{
			ItemName:  "Hyperion",
			SoldPrice: 100_000_000,
			LowestBin: 90_000_000,
			CostBasis: models.CostBasisLowestBin,
			DateTime:  now.Add(-2 * time.Hour), // today
		},
	}
	inventory := []models.InventoryItem{
		{ItemName: "Necron Chestplate", PricePaid: 40_000_000, DatePurchased: now.AddDate(0, 0, -1)},
		{ItemName: "Too Old", PricePaid: 1_000_000, DatePurchased: now.AddDate(0, 0, -10)},
	}

	flow := stats.CashFlowFor(trades, inventory, now, 7)
	require.Len(t, flow, 7)

	today := flow[6]
	assert.Equal(t, int64(100_000_000), today.MoneyIn)
	assert.Equal(t, int64(90_000_000), today.MoneyOut)
	assert.Equal(t, int64(10_000_000), today.Net)

	yesterday := flow[5]
	assert.Equal(t, int64(0), yesterday.MoneyIn)
	assert.Equal(t, int64(40_000_000), yesterday.MoneyOut)

	// The 10-day-old purchase falls outside the window
	var totalOut int64
	for _, d := range flow {
		totalOut += d.MoneyOut
	}
	assert.Equal(t, int64(130_000_000), totalOut)
}

func TestCalendarFor(t *testing.T) {
	trades := []models.Trade{
		tradeAt("Hyperion", 5_000_000, time.Date(2025, 8, 3, 10, 0, 0, 0, time.UTC)),
		tradeAt("Hyperion", -1_000_000, time.Date(2025, 8, 3, 15, 0, 0, 0, time.UTC)),
		tradeAt("Juju Shortbow", 2_000_000, time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC)),
		tradeAt("Wrong Month", 9_000_000, time.Date(2025, 7, 3, 9, 0, 0, 0, time.UTC)),
	}

	days := stats.CalendarFor(trades, 2025, time.August, time.UTC)
	require.Len(t, days, 31)

	assert.Equal(t, int64(4_000_000), days[2].NetProfit)
	assert.Equal(t, 2, days[2].TradeCount)

	assert.Equal(t, int64(2_000_000), days[19].NetProfit)

	// Days without trades are present with zero values
	assert.Equal(t, int64(0), days[0].NetProfit)
	assert.Equal(t, 0, days[0].TradeCount)
}

func TestCalendarForFebruary(t *testing.T) {
	days := stats.CalendarFor(nil, 2024, time.February, time.UTC)
	assert.Len(t, days, 29, "leap year February")
}
