package calculation

import (
	"github.com/shopspring/decimal"
)

// IRR search bounds and tolerance (rates as fractions).
var (
	irrLowerBound = decimal.NewFromFloat(-0.99)
	irrUpperBound = decimal.NewFromInt(10)
	irrTolerance  = decimal.NewFromFloat(0.0000001)
)

const irrMaxIterations = 200

// NPV discounts flows[t] at rate for t = 0..len(flows)-1.
func NPV(rate decimal.Decimal, flows []decimal.Decimal) decimal.Decimal {
	var total decimal.Decimal
	for t, cf := range flows {
		if t == 0 {
			total = total.Add(cf)
			continue
		}
		total = total.Add(cf.Div(compound(rate, t)))
	}
	return total
}

// SolveIRR finds the rate (as a fraction) at which the NPV of flows is zero, by bisection.
// ok is false when the flows have no sign change over the search interval.
func SolveIRR(flows []decimal.Decimal) (rate decimal.Decimal, ok bool) {
	if len(flows) < 2 {
		return decimal.Zero, false
	}

	minRate, maxRate := irrLowerBound, irrUpperBound
	npvMin := NPV(minRate, flows)
	npvMax := NPV(maxRate, flows)
	if npvMin.Sign()*npvMax.Sign() > 0 {
		return decimal.Zero, false
	}
	if npvMin.IsZero() {
		return minRate, true
	}
	if npvMax.IsZero() {
		return maxRate, true
	}

	two := decimal.NewFromInt(2)
	for i := 0; i < irrMaxIterations; i++ {
		mid := minRate.Add(maxRate).Div(two)
		npvMid := NPV(mid, flows)

		if npvMid.IsZero() || maxRate.Sub(minRate).LessThan(irrTolerance) {
			return mid, true
		}

		// Keep the half where the sign change lies
		if npvMin.Sign()*npvMid.Sign() < 0 {
			maxRate = mid
		} else {
			minRate = mid
			npvMin = npvMid
		}
	}

	return minRate.Add(maxRate).Div(two), true
}
