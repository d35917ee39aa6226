package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "item_name,category,lowest_bin,craft_cost,price_paid,ah_average_value,sold_price,cost_basis,lowball_basis,date_time\n"

func TestImportCSVReportsRowErrors(t *testing.T) {
	s := NewTradeService(nil)

	input := csvHeader +
		",Swords,100m,,80m,,110m,,,\n" + // missing item name
		"Hyperion,Swords,100m,,80m,,110m,,,yesterday\n" + // unparseable date
		"Hyperion,Swords,100m,,-5m,,110m,,,\n" + // negative price
		"Hyperion,Pets,100m,,80m,,110m,,,\n" // unknown category

	result, err := s.ImportCSV(1, strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 4, result.Skipped)
	require.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors[0], "row 1")
	assert.Contains(t, result.Errors[0], "missing item name")
	assert.Contains(t, result.Errors[1], "row 2")
	assert.Contains(t, result.Errors[1], "invalid date_time")
	assert.Contains(t, result.Errors[2], "row 3")
	assert.Contains(t, result.Errors[2], "must not be negative")
	assert.Contains(t, result.Errors[3], "row 4")
	assert.Contains(t, result.Errors[3], "invalid category")
}

func TestImportCSVMalformedInput(t *testing.T) {
	s := NewTradeService(nil)

	_, err := s.ImportCSV(1, strings.NewReader("not,a\nvalid csv"))
	assert.Error(t, err)
}
