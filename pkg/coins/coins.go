package coins

import (
	"math"
	"strconv"
	"strings"
)

// Parse converts a shorthand price string to whole coins.
// Accepted forms: "1.5b", "100m", "250k", "1,000,000", "500".
// Malformed input parses to 0; Parse never fails.
func Parse(value string) int64 {
	clean := strings.ToLower(strings.ReplaceAll(value, ",", ""))

	var result float64

	switch {
	case strings.Contains(clean, "b"):
		result = parseFloat(strings.ReplaceAll(clean, "b", "")) * 1_000_000_000
	case strings.Contains(clean, "m"):
		result = parseFloat(strings.ReplaceAll(clean, "m", "")) * 1_000_000
	case strings.Contains(clean, "k"):
		result = parseFloat(strings.ReplaceAll(clean, "k", "")) * 1_000
	default:
		result = parseFloat(clean)
	}

	// Coins have no fractional unit
	return int64(math.Round(result))
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// Format renders a coin amount as compact shorthand: 1.5b, 100.0m, 250.0k.
// Values under 1000 are grouped with commas. Negative values keep their sign
// on the shorthand prefix. Format is lossy; it is not an inverse of Parse.
func Format(value float64) string {
	abs := math.Abs(value)
	sign := ""
	if value < 0 {
		sign = "-"
	}

	switch {
	case abs >= 1_000_000_000:
		return sign + strconv.FormatFloat(abs/1_000_000_000, 'f', 1, 64) + "b"
	case abs >= 1_000_000:
		return sign + strconv.FormatFloat(abs/1_000_000, 'f', 1, 64) + "m"
	case abs >= 1_000:
		return sign + strconv.FormatFloat(abs/1_000, 'f', 1, 64) + "k"
	}
	return sign + groupThousands(int64(math.Round(abs)))
}

// FormatInt is Format for whole coin amounts.
func FormatInt(value int64) string {
	return Format(float64(value))
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
