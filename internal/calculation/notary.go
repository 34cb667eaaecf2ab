package calculation

import "github.com/shopspring/decimal"

var (
	// NotaryFeeRate is the default notary fee estimate, in percent of the purchase price.
	NotaryFeeRate = decimal.NewFromFloat(7.5)
	// NotaryOverrideThreshold is the gap, in percent of price, above which a fresh estimate
	// replaces the stored notary fees.
	NotaryOverrideThreshold = decimal.NewFromInt(2)
)

// EstimateNotaryFees returns the default notary fee estimate for a purchase price.
func EstimateNotaryFees(price decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}
	return percentOf(price, NotaryFeeRate)
}

// ShouldReplaceNotaryEstimate reports whether the stored notary fees should be overwritten by a
// fresh estimate after the price changed: only when they differ by more than 2% of the price,
// so a manual override close to the estimate is left alone.
func ShouldReplaceNotaryEstimate(current, price decimal.Decimal) bool {
	gap := EstimateNotaryFees(price).Sub(current).Abs()
	return gap.GreaterThan(percentOf(price, NotaryOverrideThreshold))
}
