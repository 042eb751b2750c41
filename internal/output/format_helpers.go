package output

import "github.com/shopspring/decimal"

// FormatCurrency formats an amount as currency with 2 decimals. Routed
// through decimal so display rounding is exact regardless of the float
// noise the simulation carries.
func FormatCurrency(amount float64) string {
	return "$" + decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatPercent formats a fraction (0.04 -> "4.0%") with 1 decimal.
func FormatPercent(fraction float64) string {
	return decimal.NewFromFloat(fraction).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

// FormatPercent2 formats a fraction with 2 decimals, for rate distributions
// where a tenth of a percent is too coarse.
func FormatPercent2(fraction float64) string {
	return decimal.NewFromFloat(fraction).Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
