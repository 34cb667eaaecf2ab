package calculation

import (
	"fmt"

	"github.com/immocalc/realty-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// EvaluateLoan derives the aggregate figures of a loan from a single amortization run.
// borrower is optional; without it DebtServiceRatio and MaxBorrowCapacity are null.
func EvaluateLoan(terms domain.LoanTerms, borrower *domain.Borrower) (*domain.LoanResult, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}

	a := newAnnuity(terms)
	table := buildSchedule(terms, a)
	last := table[len(table)-1]

	fees := terms.OriginationFees()
	totalCost := last.CumulativeInterest.Add(last.CumulativeInsurance).Add(fees)

	result := &domain.LoanResult{
		BasePayment:              a.BasePayment,
		InsurancePerPeriod:       a.Insurance,
		MonthlyPaymentEquivalent: a.MonthlyEquivalent(a.PeriodPayment()),
		TotalPayment:             a.PeriodPayment().Mul(decimal.NewFromInt(int64(a.TotalPeriods))),
		TotalInterest:            last.CumulativeInterest,
		TotalInsurance:           last.CumulativeInsurance,
		TotalFees:                fees,
		TotalCost:                totalCost,
		EffectiveRateApprox:      EffectiveRateApprox(totalCost, terms.Principal, terms.TermYears),
		EndDate:                  last.Date,
		AmortizationTable:        table,
	}

	if borrower != nil && borrower.MonthlyIncome != nil {
		result.DebtServiceRatio = DebtServiceRatio(result.MonthlyPaymentEquivalent, *borrower.MonthlyIncome)
		if borrower.MaxDebtRatio != nil {
			capacity, err := MaxBorrowCapacity(terms, *borrower.MonthlyIncome, *borrower.MaxDebtRatio)
			if err == nil {
				result.MaxBorrowCapacity = decimal.NullDecimal{Decimal: capacity, Valid: true}
			}
		}
	}

	return result, nil
}

// EffectiveRateApprox is (totalCost / principal / termYears) × 100.
// It is a rough annual cost rate, not an actuarial APR.
func EffectiveRateApprox(totalCost, principal decimal.Decimal, termYears int) decimal.Decimal {
	if !principal.IsPositive() || termYears <= 0 {
		return decimal.Zero
	}
	return totalCost.Mul(hundred).Div(principal.Mul(decimal.NewFromInt(int64(termYears))))
}

// DebtServiceRatio is the share of monthly income consumed by the payment, in percent.
// It is null when income is zero or negative.
func DebtServiceRatio(monthlyPayment, monthlyIncome decimal.Decimal) decimal.NullDecimal {
	return ratioPercent(monthlyPayment, monthlyIncome)
}

// MaxBorrowCapacity reverse-solves the annuity formula for the largest principal whose monthly
// equivalent installment (insurance included) fits within monthlyIncome × maxDebtRatio%.
// Rate, term, frequency and insurance come from terms; terms.Principal is ignored.
func MaxBorrowCapacity(terms domain.LoanTerms, monthlyIncome, maxDebtRatio decimal.Decimal) (decimal.Decimal, error) {
	probe := terms
	probe.Principal = one
	if err := probe.Validate(); err != nil {
		return decimal.Zero, err
	}
	if monthlyIncome.IsNegative() || maxDebtRatio.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: income and debt ratio cannot be negative", domain.ErrInvalidLoanTerms)
	}

	unit := newAnnuity(probe)

	maxMonthly := percentOf(monthlyIncome, maxDebtRatio)
	budgetPerPeriod := maxMonthly.Mul(twelve).Div(decimal.NewFromInt(int64(unit.PaymentsPerYear)))

	// Insurance is flat on principal, so the insurance share of the installment does not
	// depend on the principal and the unit evaluation gives it exactly.
	principalShare := unit.BasePayment.Div(unit.PeriodPayment())
	maxPrincipalPayment := budgetPerPeriod.Mul(principalShare)

	return maxPrincipalPayment.Mul(unit.principalPerPayment()), nil
}
