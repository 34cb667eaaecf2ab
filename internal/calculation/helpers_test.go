package calculation

import (
	"testing"
	"time"

	"github.com/immocalc/realty-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimalEqual(t *testing.T, expected string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(d(expected)), "expected %s, got %s", expected, got.String())
}

func assertDecimalNear(t *testing.T, expected float64, got decimal.Decimal, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, expected, got.InexactFloat64(), delta, msgAndArgs...)
}

func scenarioATerms() domain.LoanTerms {
	return domain.LoanTerms{
		Principal:        d("200000"),
		AnnualRate:       d("3.85"),
		TermYears:        25,
		InsuranceRate:    d("0.36"),
		PaymentFrequency: domain.FrequencyMonthly,
		StartDate:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func scenarioBTerms() domain.LoanTerms {
	return domain.LoanTerms{
		Principal:        d("120000"),
		AnnualRate:       decimal.Zero,
		TermYears:        10,
		PaymentFrequency: domain.FrequencyMonthly,
		StartDate:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
