package calculation

import (
	"github.com/shopspring/decimal"
)

// internalPrecision bounds the fractional digits carried between periods so that
// long schedules do not accumulate ever-growing decimal expansions.
const internalPrecision int32 = 16

// compoundPrecision is used inside exponentiation, where squaring doubles the digit count.
const compoundPrecision int32 = 24

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// compound returns (1+rate)^periods for a non-negative integer exponent by repeated squaring.
func compound(rate decimal.Decimal, periods int) decimal.Decimal {
	result := one
	base := one.Add(rate)
	for n := periods; n > 0; n >>= 1 {
		if n&1 == 1 {
			result = result.Mul(base).Round(compoundPrecision)
		}
		base = base.Mul(base).Round(compoundPrecision)
	}
	return result
}

// percentOf returns value × pct / 100.
func percentOf(value, pct decimal.Decimal) decimal.Decimal {
	return value.Mul(pct).Div(hundred)
}

// ratioPercent returns num / den × 100, or an invalid NullDecimal when den is not positive.
func ratioPercent(num, den decimal.Decimal) decimal.NullDecimal {
	if !den.IsPositive() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: num.Mul(hundred).Div(den), Valid: true}
}

func maxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
