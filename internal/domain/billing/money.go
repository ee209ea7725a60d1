package billing

import "strconv"

// CalculateTax returns amount * rate. No rounding.
func CalculateTax(amount, rate float64) float64 {
	return amount * rate
}

// ApplyDiscount returns the discount amount fee * fraction, not the
// discounted fee.
func ApplyDiscount(fee, fraction float64) float64 {
	return fee * fraction
}

// FormatAmount renders v with two decimals for display.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
