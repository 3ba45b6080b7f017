package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a non-negative decimal attribute value.
// Empty, malformed and negative input all yield zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FormatCredits renders d with one decimal place, dropping a trailing ".0".
func FormatCredits(d decimal.Decimal) string {
	return strings.TrimSuffix(d.StringFixed(1), ".0")
}

// FormatCurrency renders "<code> <amount>" with two decimal places.
func FormatCurrency(code string, d decimal.Decimal) string {
	return code + " " + d.StringFixed(2)
}
