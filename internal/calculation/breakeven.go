package calculation

import (
	"fmt"

	"github.com/immocalc/realty-calculator/internal/domain"
	"github.com/immocalc/realty-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Break-even rate search bounds (annual percent).
var (
	breakEvenMinRate   = decimal.Zero
	breakEvenMaxRate   = decimal.NewFromInt(20)
	breakEvenTolerance = decimal.NewFromFloat(0.005) // Within half a cent
)

// BreakEvenRate finds the highest annual rate at which the monthly equivalent installment of terms
// (insurance included) stays within maxMonthlyPayment. terms.AnnualRate is ignored.
// It returns an error when even a zero rate does not fit the budget.
func BreakEvenRate(terms domain.LoanTerms, maxMonthlyPayment decimal.Decimal) (decimal.Decimal, error) {
	probe := terms
	probe.AnnualRate = breakEvenMinRate
	if err := probe.Validate(); err != nil {
		return decimal.Zero, err
	}

	monthlyAt := func(rate decimal.Decimal) decimal.Decimal {
		probe.AnnualRate = rate
		a := newAnnuity(probe)
		return a.MonthlyEquivalent(a.PeriodPayment())
	}

	if monthlyAt(breakEvenMinRate).GreaterThan(maxMonthlyPayment) {
		return decimal.Zero, fmt.Errorf("budget of %s a month cannot repay %s over %d years even at 0%%",
			maxMonthlyPayment.StringFixed(2), terms.Principal.StringFixed(2), terms.TermYears)
	}
	if !monthlyAt(breakEvenMaxRate).GreaterThan(maxMonthlyPayment) {
		return breakEvenMaxRate, nil
	}

	// Binary search for the rate matching the budget
	minRate, maxRate := breakEvenMinRate, breakEvenMaxRate
	maxIterations := 60
	two := decimal.NewFromInt(2)

	for i := 0; i < maxIterations; i++ {
		testRate := minRate.Add(maxRate).Div(two)
		diff := monthlyAt(testRate).Sub(maxMonthlyPayment)

		if diff.Abs().LessThan(breakEvenTolerance) {
			if diff.IsPositive() {
				break
			}
			return testRate, nil
		}

		if diff.IsNegative() {
			// Payment under budget, a higher rate still fits
			minRate = testRate
		} else {
			maxRate = testRate
		}

		if maxRate.Sub(minRate).LessThan(decimal.NewFromFloat(0.000001)) {
			break
		}
	}

	// minRate always fits the budget
	return minRate, nil
}

// cumulativeCost is what a loan has cost after period i (1-based): fees plus interest and insurance.
func cumulativeCost(terms domain.LoanTerms, table []domain.AmortizationRow, i int) decimal.Decimal {
	if i <= 0 {
		return terms.OriginationFees()
	}
	row := table[min(i, len(table))-1]
	return terms.OriginationFees().Add(row.CumulativeInterest).Add(row.CumulativeInsurance)
}

// CalculateCostBreakEven finds the first crossover (if any) between the cumulative cost of two
// offers. Both tables are walked month by month so offers with different frequencies line up;
// a table that has ended keeps its final cost. If no crossover is found, returns nil, nil.
func CalculateCostBreakEven(termsA domain.LoanTerms, tableA []domain.AmortizationRow, termsB domain.LoanTerms, tableB []domain.AmortizationRow) (*domain.CostBreakEven, error) {
	if len(tableA) == 0 || len(tableB) == 0 {
		return nil, fmt.Errorf("one or both amortization tables are empty")
	}

	monthsA := termsA.PaymentFrequency.MonthsPerPeriod()
	monthsB := termsB.PaymentFrequency.MonthsPerPeriod()
	horizon := max(len(tableA)*monthsA, len(tableB)*monthsB)

	costAt := func(month int) (decimal.Decimal, decimal.Decimal) {
		return cumulativeCost(termsA, tableA, month/monthsA), cumulativeCost(termsB, tableB, month/monthsB)
	}

	cumA, cumB := costAt(0)
	prevDiff := cumA.Sub(cumB)

	for month := 1; month <= horizon; month++ {
		cumA, cumB = costAt(month)
		currDiff := cumA.Sub(cumB)

		// Sign change between the previous month and this one: interpolate inside the month
		if prevDiff.Sign() != 0 && prevDiff.Sign()*currDiff.Sign() <= 0 {
			fraction := decimal.NewFromInt(1)
			if denom := currDiff.Sub(prevDiff); !denom.IsZero() {
				fraction = prevDiff.Neg().Div(denom)
			}
			if currDiff.IsZero() {
				fraction = decimal.NewFromInt(1)
			}
			prevA := cumulativeCost(termsA, tableA, (month-1)/monthsA)
			return &domain.CostBreakEven{
				Month:          month,
				Date:           dateutil.AddMonths(termsA.StartDate, month),
				Fraction:       fraction,
				CumulativeCost: prevA.Add(cumA.Sub(prevA).Mul(fraction)),
			}, nil
		}
		prevDiff = currDiff
	}

	return nil, nil
}
