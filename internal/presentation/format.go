package presentation

import "github.com/shopspring/decimal"

const CurrencySymbol = "$"

// FormatCurrency renders an amount with two decimal places.
func FormatCurrency(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + CurrencySymbol + d.Neg().StringFixed(2)
	}
	return CurrencySymbol + d.StringFixed(2)
}
