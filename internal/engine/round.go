package engine

import (
	"math"
	"strconv"
)

// Canonical rounding precisions. Per-line masses round at 6 decimal places;
// every higher-level aggregate re-rounds independently at 4.
const (
	lineDP      = 6
	aggregateDP = 4
)

// round rounds v to dp decimal places, half away from zero.
func round(v float64, dp int) float64 {
	p := math.Pow10(dp)
	return math.Round(v*p) / p
}

// formatNumber renders a float the way it appears in audit formulas:
// shortest decimal form, no exponent, no trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
