package calculation

import (
	"github.com/immocalc/realty-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// summarizeComparison picks the cheapest entry and the largest saving against the baseline
func summarizeComparison(c *domain.LoanComparison) {
	var bestCost decimal.Decimal
	found := false

	for _, e := range c.Entries {
		if !e.OK() {
			continue
		}
		if !found || e.Result.TotalCost.LessThan(bestCost) {
			bestCost = e.Result.TotalCost
			c.BestOverall = e.Label
			found = true
		}
		if e.Savings.Valid && e.Savings.Decimal.GreaterThan(c.MaxSavings) {
			c.MaxSavings = e.Savings.Decimal
		}
	}
}

// LoanAssumptions lists the modelling conventions behind a loan result, for reports
func LoanAssumptions(terms domain.LoanTerms) []string {
	return []string{
		"Borrower insurance is charged flat on the original principal (" + terms.InsuranceRate.StringFixed(2) + "% a year)",
		"Installments are level; the last one absorbs rounding so the balance ends at zero",
		"Effective rate is total cost / principal / years, not an actuarial APR",
		"Monthly equivalent = installment × payments per year / 12",
	}
}

// InvestmentAssumptions lists the conventions behind an investment result, for reports
func InvestmentAssumptions(params domain.InvestmentParameters) []string {
	balance := "Outstanding loan in the projection: principal × (1 - year/term) × 1.1 (approximation)"
	if params.ProjectionBalance == domain.BalanceSchedule {
		balance = "Outstanding loan in the projection: read from the amortization table"
	}
	return []string{
		"Property appreciates at " + params.AppreciationRate.StringFixed(2) + "% a year on the total investment",
		"Rent is reduced by vacancy (" + params.VacancyRate.StringFixed(1) + "%) and unpaid (" + params.UnpaidRate.StringFixed(1) + "%) haircuts",
		balance,
		"Ten-year IRR approximation = (inflows / equity)^(1/10) - 1; the solved IRR discounts the yearly flows",
	}
}
