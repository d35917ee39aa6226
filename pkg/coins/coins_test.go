package coins_test

import (
	"fmt"
	"testing"

	"github.com/lowball-ledger/pkg/coins"
	"github.com/stretchr/testify/assert"
)

func TestParseShorthand(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"1.5b", 1_500_000_000},
		{"2b", 2_000_000_000},
		{"100m", 100_000_000},
		{"1.2m", 1_200_000},
		{"250k", 250_000},
		{"1,000,000", 1_000_000},
		{"500", 500},
		{"0", 0},
		{"1.5M", 1_500_000},
		{"3.5K", 3_500},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, coins.Parse(tt.input))
		})
	}
}

func TestParseMalformedInput(t *testing.T) {
	// Parsing never fails; garbage degrades to zero
	for _, input := range []string{"", "abc", "xyz", "k", "m", "b", "--5", "1.2.3m"} {
		assert.Equal(t, int64(0), coins.Parse(input), "input %q", input)
	}
}

func TestParsePlainNumbersRoundTrip(t *testing.T) {
	// Plain digit strings with no suffix are taken literally
	for _, v := range []int64{0, 1, 999, 1_000, 250_000, 1_000_000, 1_500_000_000} {
		assert.Equal(t, v, coins.Parse(fmt.Sprintf("%d", v)))
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{1_500_000_000, "1.5b"},
		{2_000_000_000, "2.0b"},
		{100_000_000, "100.0m"},
		{1_500_000, "1.5m"},
		{250_000, "250.0k"},
		{1_000, "1.0k"},
		{999, "999"},
		{500, "500"},
		{0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, coins.Format(tt.value))
		})
	}
}

func TestFormatNegative(t *testing.T) {
	assert.Equal(t, "-1.5m", coins.Format(-1_500_000))
	assert.Equal(t, "-500", coins.Format(-500))
}

func TestFormatIsLossy(t *testing.T) {
	// format(parse(s)) need not reproduce s: shorthand keeps one decimal
	assert.Equal(t, "1.5m", coins.FormatInt(coins.Parse("1500000")))
	assert.Equal(t, "1.6m", coins.FormatInt(coins.Parse("1.56m")))
}
