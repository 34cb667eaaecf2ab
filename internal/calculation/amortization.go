package calculation

import (
	"github.com/immocalc/realty-calculator/internal/domain"
	"github.com/immocalc/realty-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// annuity captures the per-period constants of a loan: rate, count and the level installment.
type annuity struct {
	PaymentsPerYear int
	TotalPeriods    int
	PeriodicRate    decimal.Decimal
	// Factor is (1+PeriodicRate)^TotalPeriods.
	Factor      decimal.Decimal
	BasePayment decimal.Decimal
	Insurance   decimal.Decimal
}

// newAnnuity derives the installment for validated terms.
func newAnnuity(terms domain.LoanTerms) annuity {
	ppy := terms.PaymentFrequency.PaymentsPerYear()
	n := terms.TermYears * ppy
	ppyDec := decimal.NewFromInt(int64(ppy))

	a := annuity{
		PaymentsPerYear: ppy,
		TotalPeriods:    n,
		PeriodicRate:    terms.AnnualRate.Div(hundred.Mul(ppyDec)),
	}
	a.Factor = compound(a.PeriodicRate, n)
	if a.PeriodicRate.IsZero() {
		a.BasePayment = terms.Principal.Div(decimal.NewFromInt(int64(n)))
	} else {
		a.BasePayment = terms.Principal.Mul(a.PeriodicRate).Mul(a.Factor).Div(a.Factor.Sub(one))
	}

	// Flat on the original principal, not the declining balance.
	a.Insurance = terms.Principal.Mul(terms.InsuranceRate).Div(hundred.Mul(ppyDec))
	return a
}

// paymentPerUnit is the installment (excluding insurance) that repays one unit of principal.
func (a annuity) paymentPerUnit() decimal.Decimal {
	if a.PeriodicRate.IsZero() {
		return one.Div(decimal.NewFromInt(int64(a.TotalPeriods)))
	}
	return a.PeriodicRate.Mul(a.Factor).Div(a.Factor.Sub(one))
}

// principalPerPayment inverts paymentPerUnit: the principal one unit of installment can service.
func (a annuity) principalPerPayment() decimal.Decimal {
	if a.PeriodicRate.IsZero() {
		return decimal.NewFromInt(int64(a.TotalPeriods))
	}
	return a.Factor.Sub(one).Div(a.PeriodicRate.Mul(a.Factor))
}

// PeriodPayment is the full installment including insurance.
func (a annuity) PeriodPayment() decimal.Decimal {
	return a.BasePayment.Add(a.Insurance)
}

// MonthlyEquivalent normalizes a per-period amount to a monthly figure.
func (a annuity) MonthlyEquivalent(perPeriod decimal.Decimal) decimal.Decimal {
	return perPeriod.Mul(decimal.NewFromInt(int64(a.PaymentsPerYear))).Div(twelve)
}

// GenerateSchedule turns loan terms into the full amortization table.
// Invalid terms are rejected with domain.ErrInvalidLoanTerms before any row is built.
func GenerateSchedule(terms domain.LoanTerms) ([]domain.AmortizationRow, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	return buildSchedule(terms, newAnnuity(terms)), nil
}

func buildSchedule(terms domain.LoanTerms, a annuity) []domain.AmortizationRow {
	months := terms.PaymentFrequency.MonthsPerPeriod()
	rows := make([]domain.AmortizationRow, 0, a.TotalPeriods)

	balance := terms.Principal
	var cumPrincipal, cumInterest, cumInsurance decimal.Decimal

	for i := 1; i <= a.TotalPeriods; i++ {
		interest := balance.Mul(a.PeriodicRate).Round(internalPrecision)
		principal := a.BasePayment.Sub(interest)

		balance = balance.Sub(principal)
		// Absorb rounding drift: the table always ends at exactly zero.
		if i == a.TotalPeriods || balance.IsNegative() {
			balance = decimal.Zero
		}

		cumPrincipal = cumPrincipal.Add(principal)
		cumInterest = cumInterest.Add(interest)
		cumInsurance = cumInsurance.Add(a.Insurance)

		rows = append(rows, domain.AmortizationRow{
			Period:              i,
			Date:                dateutil.AddMonths(terms.StartDate, i*months),
			TotalPayment:        a.BasePayment.Add(a.Insurance),
			PrincipalPortion:    principal,
			InterestPortion:     interest,
			InsurancePortion:    a.Insurance,
			RemainingBalance:    balance,
			CumulativePrincipal: cumPrincipal,
			CumulativeInterest:  cumInterest,
			CumulativeInsurance: cumInsurance,
		})
	}
	return rows
}

// BalanceAfterYears looks up the outstanding principal after the given number of years.
// Year 0 is the original principal; years past the term return zero.
func BalanceAfterYears(terms domain.LoanTerms, table []domain.AmortizationRow, years int) decimal.Decimal {
	if years <= 0 {
		return terms.Principal
	}
	idx := years * terms.PaymentFrequency.PaymentsPerYear()
	if idx > len(table) {
		return decimal.Zero
	}
	return table[idx-1].RemainingBalance
}
