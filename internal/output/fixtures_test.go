package output

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/immocalc/realty-calculator/internal/calculation"
	"github.com/immocalc/realty-calculator/internal/domain"
)

var fixtureStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// zeroRateTerms is 120 000 over 10 years at 0%: 120 installments of exactly 1 000.
func zeroRateTerms() domain.LoanTerms {
	return domain.LoanTerms{
		Principal:        decimal.NewFromInt(120000),
		TermYears:        10,
		PaymentFrequency: domain.FrequencyMonthly,
		StartDate:        fixtureStart,
	}
}

func buildLoanReport(t *testing.T) *domain.Report {
	t.Helper()
	eng := calculation.NewCalculationEngine()
	borrower := domain.NewBorrower(decimal.NewFromInt(4000), decimal.NewFromInt(35))
	report, err := eng.RunLoan(zeroRateTerms(), borrower)
	require.NoError(t, err)
	report.GeneratedAt = fixtureStart
	return report
}

func buildComparisonReport(t *testing.T) *domain.Report {
	t.Helper()
	base := zeroRateTerms()
	pricier := base
	pricier.AnnualRate = decimal.NewFromInt(2)
	broken := base
	broken.TermYears = 0

	eng := calculation.NewCalculationEngine()
	report, err := eng.RunComparison(context.Background(), []domain.ComparisonInput{
		{Label: "Zero rate", Terms: base},
		{Label: "Two percent", Terms: pricier},
		{Label: "Broken", Terms: broken},
	})
	require.NoError(t, err)
	report.GeneratedAt = fixtureStart
	return report
}

// buildInvestmentReport is a cash purchase: 100 000 + 7 500 notary, 800 rent, 150 monthly charges.
func buildInvestmentReport(t *testing.T) *domain.Report {
	t.Helper()
	params := domain.InvestmentParameters{
		Price:       decimal.NewFromInt(100000),
		NotaryFees:  decimal.NewFromInt(7500),
		PropertyTax: decimal.NewFromInt(1200),
		CondoFees:   decimal.NewFromInt(600),
		MonthlyRent: decimal.NewFromInt(800),
	}
	eng := calculation.NewCalculationEngine()
	report, err := eng.RunInvestment(params)
	require.NoError(t, err)
	report.GeneratedAt = fixtureStart
	return report
}
