package models

import "math"

// DollarsToCents converts a decimal currency amount to integer cents,
// rounding half away from zero so the conversion is deterministic.
func DollarsToCents(dollars float64) int {
	return int(math.Round(dollars * 100))
}

// CentsToDollars converts integer cents back to a decimal currency amount.
func CentsToDollars(cents int) float64 {
	return float64(cents) / 100.0
}
