package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvestmentParameters_Validate(t *testing.T) {
	ip := InvestmentParameters{
		Price:       decimal.NewFromInt(100000),
		NotaryFees:  decimal.NewFromInt(7500),
		Renovation:  decimal.NewFromInt(5000),
		Furniture:   decimal.NewFromInt(2500),
		MonthlyRent: decimal.NewFromInt(700),
		VacancyRate: decimal.NewFromInt(100),
	}
	require.NoError(t, ip.Validate())
	assert.True(t, ip.TotalInvestment().Equal(decimal.NewFromInt(115000)))

	bad := ip
	bad.CondoFees = decimal.NewFromInt(-1)
	err := bad.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInvestment))
	assert.Contains(t, err.Error(), "condo_fees")

	bad = ip
	bad.UnpaidRate = decimal.NewFromInt(101)
	assert.ErrorIs(t, bad.Validate(), ErrInvalidInvestment)

	bad = ip
	bad.ProjectionBalance = "exact"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidInvestment)
}

func TestLoanComparison_Failed(t *testing.T) {
	lc := LoanComparison{Entries: []ComparisonEntry{
		{Label: "ok", Result: &LoanResult{}},
		{Label: "broken", Err: ErrInvalidLoanTerms, Error: ErrInvalidLoanTerms.Error()},
		{Label: "missing"},
	}}
	failed := lc.Failed()
	require.Len(t, failed, 2)
	assert.Equal(t, "broken", failed[0].Label)
	assert.True(t, lc.Entries[0].OK())
}
