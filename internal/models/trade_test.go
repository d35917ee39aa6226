package models_test

import (
	"testing"

	"github.com/lowball-ledger/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range models.Categories {
		assert.True(t, c.Valid(), "category %q", c)
	}
	assert.False(t, models.Category("Pets").Valid())
	assert.False(t, models.Category("").Valid())
}

func TestBasisValid(t *testing.T) {
	assert.True(t, models.CostBasisLowestBin.Valid())
	assert.True(t, models.CostBasisCraftCost.Valid())
	assert.True(t, models.CostBasisPricePaid.Valid())
	assert.False(t, models.CostBasis("market").Valid())

	assert.True(t, models.LowballBasisLowestBin.Valid())
	assert.True(t, models.LowballBasisCraftCost.Valid())
	assert.False(t, models.LowballBasis("price_paid").Valid())
}

func TestCostBasisValue(t *testing.T) {
	trade := models.Trade{
		LowestBin: 100,
		CraftCost: 80,
		PricePaid: 60,
	}

	trade.CostBasis = models.CostBasisLowestBin
	assert.Equal(t, int64(100), trade.CostBasisValue())

	trade.CostBasis = models.CostBasisCraftCost
	assert.Equal(t, int64(80), trade.CostBasisValue())

	trade.CostBasis = models.CostBasisPricePaid
	assert.Equal(t, int64(60), trade.CostBasisValue())
}

func TestLowballBasisValue(t *testing.T) {
	trade := models.Trade{LowestBin: 100, CraftCost: 80}

	trade.LowballBasis = models.LowballBasisLowestBin
	assert.Equal(t, int64(100), trade.LowballBasisValue())

	trade.LowballBasis = models.LowballBasisCraftCost
	assert.Equal(t, int64(80), trade.LowballBasisValue())
}
