package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	money "github.com/immocalc/realty-calculator/pkg/decimal"
)

// NotAvailable is printed in place of an undefined ratio.
const NotAvailable = "n/a"

// FormatCurrency formats a decimal as euros with 2 decimals, French style ("1 234,56 €").
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatNullPercentage formats an optional percentage, n/a when undefined.
func FormatNullPercentage(n decimal.NullDecimal) string {
	if !n.Valid {
		return NotAvailable
	}
	return FormatPercentage(n.Decimal)
}

// FormatNullCurrency formats an optional amount, n/a when undefined.
func FormatNullCurrency(n decimal.NullDecimal) string {
	if !n.Valid {
		return NotAvailable
	}
	return FormatCurrency(n.Decimal)
}

// FormatYears formats an optional duration in years.
func FormatYears(n decimal.NullDecimal) string {
	if !n.Valid {
		return NotAvailable
	}
	return fmt.Sprintf("%s years", n.Decimal.StringFixed(1))
}
