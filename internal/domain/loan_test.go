package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func validTerms() LoanTerms {
	return LoanTerms{
		Principal:        decimal.NewFromInt(200000),
		AnnualRate:       decimal.NewFromFloat(3.85),
		TermYears:        25,
		InsuranceRate:    decimal.NewFromFloat(0.36),
		PaymentFrequency: FrequencyMonthly,
		StartDate:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPaymentFrequency(t *testing.T) {
	tests := []struct {
		freq    PaymentFrequency
		perYear int
		months  int
	}{
		{FrequencyMonthly, 12, 1},
		{FrequencyBimonthly, 6, 2},
		{FrequencyQuarterly, 4, 3},
		{"", 12, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.perYear, tt.freq.PaymentsPerYear(), tt.freq)
		assert.Equal(t, tt.months, tt.freq.MonthsPerPeriod(), tt.freq)
	}
	assert.False(t, PaymentFrequency("weekly").Valid())
}

func TestParsePaymentFrequency(t *testing.T) {
	for in, want := range map[string]PaymentFrequency{
		"mensuel":      FrequencyMonthly,
		" Quarterly ":  FrequencyQuarterly,
		"trimestriel":  FrequencyQuarterly,
		"bimestriel":   FrequencyBimonthly,
		"":             FrequencyMonthly,
	} {
		got, err := ParsePaymentFrequency(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParsePaymentFrequency("yearly")
	assert.Error(t, err)
}

func TestLoanTerms_Validate(t *testing.T) {
	require.NoError(t, validTerms().Validate())

	mutate := map[string]func(*LoanTerms){
		"zero principal": func(lt *LoanTerms) { lt.Principal = decimal.Zero },
		"zero term":      func(lt *LoanTerms) { lt.TermYears = 0 },
		"negative rate":  func(lt *LoanTerms) { lt.AnnualRate = decimal.NewFromInt(-1) },
		"negative ins":   func(lt *LoanTerms) { lt.InsuranceRate = decimal.NewFromInt(-1) },
		"negative fee":   func(lt *LoanTerms) { lt.BrokerFees = decimal.NewFromInt(-1) },
		"bad frequency":  func(lt *LoanTerms) { lt.PaymentFrequency = "weekly" },
	}
	for name, m := range mutate {
		t.Run(name, func(t *testing.T) {
			lt := validTerms()
			m(&lt)
			err := lt.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidLoanTerms))
		})
	}
}

func TestLoanTerms_Derived(t *testing.T) {
	lt := validTerms()
	lt.PaymentFrequency = FrequencyQuarterly
	lt.BrokerFees = decimal.NewFromInt(2500)
	lt.FileFees = decimal.NewFromInt(1000)
	assert.Equal(t, 100, lt.TotalPeriods())
	assert.True(t, lt.OriginationFees().Equal(decimal.NewFromInt(3500)))
}

func TestLoanTerms_UnmarshalYAML(t *testing.T) {
	src := `
principal: 150000
annual_rate: "3.2"
term_years: 20
payment_frequency: trimestriel
start_date: 2025-03-01
`
	var lt LoanTerms
	require.NoError(t, yaml.Unmarshal([]byte(src), &lt))
	assert.True(t, lt.Principal.Equal(decimal.NewFromInt(150000)))
	assert.True(t, lt.AnnualRate.Equal(decimal.NewFromFloat(3.2)))
	assert.Equal(t, FrequencyQuarterly, lt.PaymentFrequency)
	assert.Equal(t, time.March, lt.StartDate.Month())

	err := yaml.Unmarshal([]byte("payment_frequency: weekly"), &lt)
	assert.Error(t, err)
}

func TestLoanResult_RoundedAndSummary(t *testing.T) {
	lr := LoanResult{
		BasePayment:       decimal.RequireFromString("1045.678"),
		DebtServiceRatio:  decimal.NullDecimal{Decimal: decimal.RequireFromString("21.4567"), Valid: true},
		MaxBorrowCapacity: decimal.NullDecimal{},
		AmortizationTable: []AmortizationRow{{Period: 1, RemainingBalance: decimal.RequireFromString("99.999")}},
	}
	r := lr.Rounded()
	assert.Equal(t, "1045.68", r.BasePayment.String())
	assert.Equal(t, "21.46", r.DebtServiceRatio.Decimal.String())
	assert.False(t, r.MaxBorrowCapacity.Valid)
	assert.Equal(t, "100", r.AmortizationTable[0].RemainingBalance.String())
	assert.Equal(t, "99.999", lr.AmortizationTable[0].RemainingBalance.String(), "original untouched")

	assert.Nil(t, lr.Summary().AmortizationTable)
	assert.Len(t, lr.AmortizationTable, 1)
}

func TestBorrower_UnmarshalYAML(t *testing.T) {
	var b Borrower
	require.NoError(t, yaml.Unmarshal([]byte("monthly_income: 5200\nmax_debt_ratio: \"35\""), &b))
	require.NotNil(t, b.MonthlyIncome)
	require.NotNil(t, b.MaxDebtRatio)
	assert.True(t, b.MonthlyIncome.Equal(decimal.NewFromInt(5200)))
	assert.True(t, b.MaxDebtRatio.Equal(decimal.NewFromInt(35)))

	var partial Borrower
	require.NoError(t, yaml.Unmarshal([]byte("monthly_income: 4000"), &partial))
	assert.Nil(t, partial.MaxDebtRatio)

	assert.Error(t, yaml.Unmarshal([]byte("monthly_income: lots"), &Borrower{}))
}
