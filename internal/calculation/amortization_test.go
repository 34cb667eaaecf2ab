package calculation

import (
	"testing"
	"time"

	"github.com/immocalc/realty-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchedule_Invariants(t *testing.T) {
	cases := []struct {
		name  string
		terms domain.LoanTerms
	}{
		{"scenario A", scenarioATerms()},
		{"zero rate", scenarioBTerms()},
		{"bimonthly", func() domain.LoanTerms {
			lt := scenarioATerms()
			lt.PaymentFrequency = domain.FrequencyBimonthly
			return lt
		}()},
		{"quarterly high rate", func() domain.LoanTerms {
			lt := scenarioATerms()
			lt.AnnualRate = d("9.5")
			lt.TermYears = 7
			lt.PaymentFrequency = domain.FrequencyQuarterly
			return lt
		}()},
		{"odd principal", domain.LoanTerms{
			Principal:  d("87654.32"),
			AnnualRate: d("1.17"),
			TermYears:  13,
			StartDate:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := GenerateSchedule(tc.terms)
			require.NoError(t, err)
			require.Len(t, rows, tc.terms.TotalPeriods())

			var sumPrincipal, sumInterest, sumInsurance decimal.Decimal
			prev := tc.terms.Principal
			for i, row := range rows {
				assert.Equal(t, i+1, row.Period)
				assert.False(t, row.RemainingBalance.GreaterThan(prev), "balance increased at period %d", row.Period)
				prev = row.RemainingBalance

				sumPrincipal = sumPrincipal.Add(row.PrincipalPortion)
				sumInterest = sumInterest.Add(row.InterestPortion)
				sumInsurance = sumInsurance.Add(row.InsurancePortion)
				assert.True(t, row.CumulativePrincipal.Equal(sumPrincipal), "cumulative principal at period %d", row.Period)
				assert.True(t, row.CumulativeInterest.Equal(sumInterest), "cumulative interest at period %d", row.Period)
				assert.True(t, row.CumulativeInsurance.Equal(sumInsurance), "cumulative insurance at period %d", row.Period)
			}

			assert.True(t, rows[len(rows)-1].RemainingBalance.IsZero(), "last balance must be exactly zero")

			drift := sumPrincipal.Sub(tc.terms.Principal).Abs().Div(tc.terms.Principal)
			assert.True(t, drift.LessThan(d("0.000001")), "principal drift %s", drift.String())
		})
	}
}

func TestGenerateSchedule_ScenarioA(t *testing.T) {
	rows, err := GenerateSchedule(scenarioATerms())
	require.NoError(t, err)

	first := rows[0]
	assertDecimalNear(t, 1039, first.PrincipalPortion.Add(first.InterestPortion), 2)
	assertDecimalEqual(t, "60", first.InsurancePortion)
	assertDecimalNear(t, 1099, first.TotalPayment, 2)
	// First month's interest is 200000 × 3.85% / 12
	assertDecimalNear(t, 641.67, first.InterestPortion, 0.01)
}

func TestGenerateSchedule_ZeroRate(t *testing.T) {
	rows, err := GenerateSchedule(scenarioBTerms())
	require.NoError(t, err)
	require.Len(t, rows, 120)

	for _, row := range rows {
		assertDecimalEqual(t, "1000", row.PrincipalPortion)
		assert.True(t, row.InterestPortion.IsZero())
	}
	assertDecimalEqual(t, "0", rows[len(rows)-1].CumulativeInterest)
}

func TestGenerateSchedule_Dates(t *testing.T) {
	terms := scenarioBTerms()
	terms.StartDate = time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	rows, err := GenerateSchedule(terms)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), rows[0].Date)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), rows[1].Date)
	assert.Equal(t, time.Date(2035, 1, 31, 0, 0, 0, 0, time.UTC), rows[len(rows)-1].Date)

	terms.PaymentFrequency = domain.FrequencyQuarterly
	rows, err = GenerateSchedule(terms)
	require.NoError(t, err)
	require.Len(t, rows, 40)
	assert.Equal(t, time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), rows[0].Date)
	assertDecimalEqual(t, "3000", rows[0].PrincipalPortion)
}

func TestGenerateSchedule_Deterministic(t *testing.T) {
	a, err := GenerateSchedule(scenarioATerms())
	require.NoError(t, err)
	b, err := GenerateSchedule(scenarioATerms())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateSchedule_InvalidTerms(t *testing.T) {
	cases := map[string]func(*domain.LoanTerms){
		"zero principal":     func(lt *domain.LoanTerms) { lt.Principal = decimal.Zero },
		"negative principal": func(lt *domain.LoanTerms) { lt.Principal = d("-1") },
		"zero term":          func(lt *domain.LoanTerms) { lt.TermYears = 0 },
		"negative rate":      func(lt *domain.LoanTerms) { lt.AnnualRate = d("-0.1") },
		"negative insurance": func(lt *domain.LoanTerms) { lt.InsuranceRate = d("-0.1") },
		"negative fee":       func(lt *domain.LoanTerms) { lt.FileFees = d("-10") },
		"unknown frequency":  func(lt *domain.LoanTerms) { lt.PaymentFrequency = "weekly" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			terms := scenarioATerms()
			mutate(&terms)
			rows, err := GenerateSchedule(terms)
			assert.ErrorIs(t, err, domain.ErrInvalidLoanTerms)
			assert.Nil(t, rows)
		})
	}
}

func TestBalanceAfterYears(t *testing.T) {
	terms := scenarioBTerms()
	rows, err := GenerateSchedule(terms)
	require.NoError(t, err)

	assertDecimalEqual(t, "120000", BalanceAfterYears(terms, rows, 0))
	assertDecimalEqual(t, "108000", BalanceAfterYears(terms, rows, 1))
	assertDecimalEqual(t, "60000", BalanceAfterYears(terms, rows, 5))
	assertDecimalEqual(t, "0", BalanceAfterYears(terms, rows, 10))
	assertDecimalEqual(t, "0", BalanceAfterYears(terms, rows, 15))
}

func TestCompound(t *testing.T) {
	assertDecimalEqual(t, "1", compound(d("0.05"), 0))
	assertDecimalEqual(t, "1.05", compound(d("0.05"), 1))
	assertDecimalEqual(t, "1.21", compound(d("0.1"), 2))
	assertDecimalNear(t, 1.628894627, compound(d("0.05"), 10), 1e-9)
}
