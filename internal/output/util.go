package output

import (
	"strconv"

	"github.com/shopspring/decimal"
)

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

// nullToString renders an undefined value as an empty CSV cell.
func nullToString(n decimal.NullDecimal) string {
	if !n.Valid {
		return ""
	}
	return n.Decimal.StringFixed(2)
}
