package service

import (
	"testing"

	"github.com/lowball-ledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTradeRequest() *TradeRequest {
	return &TradeRequest{
		ItemName:  "Hyperion",
		Category:  string(models.CategorySwords),
		LowestBin: "100m",
		PricePaid: "80m",
		SoldPrice: "110m",
	}
}

func TestBuildTradeComputesDerivedFields(t *testing.T) {
	s := NewTradeService(nil)

	trade, err := s.buildTrade(1, validTradeRequest())
	require.NoError(t, err)

	// 110m sale sits in the 3.5% tier against the 100m lowest-BIN basis
	assert.Equal(t, 3.5, trade.TaxPercent)
	assert.Equal(t, int64(3_850_000), trade.TaxAmount)
	assert.Equal(t, int64(6_150_000), trade.NetProfit)
	assert.Equal(t, float64(20), trade.LowballPercent)
	assert.Equal(t, models.TradeStatusCompleted, trade.Status)
}

func TestBuildTradeRejectsNegativeAmounts(t *testing.T) {
	s := NewTradeService(nil)

	tests := []struct {
		name   string
		mutate func(*TradeRequest)
	}{
		{"negative price paid", func(r *TradeRequest) { r.PricePaid = "-5m" }},
		{"negative sold price", func(r *TradeRequest) { r.SoldPrice = "-110m" }},
		{"negative lowest bin", func(r *TradeRequest) { r.LowestBin = "-100m" }},
		{"negative craft cost", func(r *TradeRequest) { r.CraftCost = "-1m" }},
		{"negative ah average", func(r *TradeRequest) { r.AhAverageValue = "-90m" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTradeRequest()
			tt.mutate(req)
			_, err := s.buildTrade(1, req)
			assert.ErrorIs(t, err, ErrNegativeAmount)
		})
	}
}

func TestBuildTradeRejectsMissingSaleFigures(t *testing.T) {
	s := NewTradeService(nil)

	req := validTradeRequest()
	req.SoldPrice = "0"
	_, err := s.buildTrade(1, req)
	assert.ErrorIs(t, err, ErrMissingSaleFigures)

	req = validTradeRequest()
	req.LowestBin = ""
	_, err = s.buildTrade(1, req)
	assert.ErrorIs(t, err, ErrMissingSaleFigures, "empty cost basis value")
}

func TestBuildTradeRejectsInvalidEnums(t *testing.T) {
	s := NewTradeService(nil)

	req := validTradeRequest()
	req.Category = "Pets"
	_, err := s.buildTrade(1, req)
	assert.ErrorIs(t, err, ErrInvalidCategory)

	req = validTradeRequest()
	req.CostBasis = "market"
	_, err = s.buildTrade(1, req)
	assert.ErrorIs(t, err, ErrInvalidCostBasis)
}

func TestAddItemRejectsNegativeAmounts(t *testing.T) {
	s := NewInventoryService(nil, nil, nil)

	_, err := s.AddItem(1, &InventoryRequest{
		ItemName:  "Necron Chestplate",
		Category:  string(models.CategoryArmors),
		PricePaid: "-40m",
	})
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = s.AddItem(1, &InventoryRequest{
		ItemName:  "Necron Chestplate",
		Category:  string(models.CategoryArmors),
		PricePaid: "40m",
		CraftCost: "-10m",
	})
	assert.ErrorIs(t, err, ErrNegativeAmount)
}
