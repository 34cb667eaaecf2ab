package output

import (
	"errors"
	"testing"

	"github.com/immocalc/realty-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func entry(label string, baseline bool, monthly, total int64) domain.ComparisonEntry {
	return domain.ComparisonEntry{
		Label:      label,
		IsBaseline: baseline,
		Result: &domain.LoanResult{
			MonthlyPaymentEquivalent: decimal.NewFromInt(monthly),
			TotalCost:                decimal.NewFromInt(total),
		},
	}
}

func TestAnalyze_Comparison(t *testing.T) {
	failed := domain.ComparisonEntry{Label: "Broken", Err: errors.New("invalid"), Error: "invalid"}
	report := &domain.Report{Comparison: &domain.LoanComparison{Entries: []domain.ComparisonEntry{
		entry("Bank A", true, 1100, 90000),
		entry("Bank B", false, 950, 95000),
		entry("Bank C", false, 1300, 70000),
		failed,
	}}}

	rec := Analyze(report)
	assert.Equal(t, "Bank C", rec.CheapestOffer)
	assert.True(t, rec.CheapestCost.Equal(decimal.NewFromInt(70000)))
	assert.True(t, rec.SavingsVsBase.Equal(decimal.NewFromInt(20000)))
	assert.Equal(t, "Bank B", rec.LowestPayment)
	assert.Equal(t, 1, rec.FailedOffers)
	assert.Empty(t, rec.Verdict)
}

func TestAnalyze_FailedBaselineHasNoSavings(t *testing.T) {
	report := &domain.Report{Comparison: &domain.LoanComparison{Entries: []domain.ComparisonEntry{
		{Label: "Base", IsBaseline: true, Err: errors.New("bad")},
		entry("Other", false, 900, 80000),
	}}}
	rec := Analyze(report)
	assert.Equal(t, "Other", rec.CheapestOffer)
	assert.True(t, rec.SavingsVsBase.IsZero())
}

func TestAnalyze_InvestmentVerdict(t *testing.T) {
	tests := []struct {
		name   string
		result domain.InvestmentResult
		want   string
	}{
		{"positive cash flow", domain.InvestmentResult{MonthlyCashFlow: decimal.NewFromInt(120)}, VerdictSelfFinancing},
		{"negative cash flow", domain.InvestmentResult{MonthlyCashFlow: decimal.NewFromInt(-250)}, VerdictEffort},
		{"over leveraged", domain.InvestmentResult{OverLeveraged: true, MonthlyCashFlow: decimal.NewFromInt(50)}, VerdictOverLeveraged},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Analyze(&domain.Report{Investment: &domain.InvestmentReport{Result: tt.result}})
			assert.Equal(t, tt.want, rec.Verdict)
		})
	}
}
