package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PaymentFrequency is how often an installment falls due.
type PaymentFrequency string

const (
	FrequencyMonthly   PaymentFrequency = "monthly"
	FrequencyBimonthly PaymentFrequency = "bimonthly"
	FrequencyQuarterly PaymentFrequency = "quarterly"
)

// PaymentsPerYear returns 12, 6 or 4. An empty frequency is treated as monthly.
func (f PaymentFrequency) PaymentsPerYear() int {
	switch f {
	case FrequencyBimonthly:
		return 6
	case FrequencyQuarterly:
		return 4
	default:
		return 12
	}
}

// MonthsPerPeriod returns the calendar months between two installments.
func (f PaymentFrequency) MonthsPerPeriod() int {
	return 12 / f.PaymentsPerYear()
}

// Valid reports whether f is a known frequency (or empty, meaning monthly).
func (f PaymentFrequency) Valid() bool {
	switch f {
	case "", FrequencyMonthly, FrequencyBimonthly, FrequencyQuarterly:
		return true
	}
	return false
}

// ParsePaymentFrequency accepts the canonical names plus a few common spellings.
func ParsePaymentFrequency(s string) (PaymentFrequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monthly", "mensuel", "month":
		return FrequencyMonthly, nil
	case "bimonthly", "bimestriel":
		return FrequencyBimonthly, nil
	case "quarterly", "trimestriel", "quarter":
		return FrequencyQuarterly, nil
	}
	return "", fmt.Errorf("unknown payment frequency %q", s)
}

// UnmarshalYAML normalizes the frequency spelling at load time.
func (f *PaymentFrequency) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParsePaymentFrequency(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// LoanTerms are the inputs of one loan calculation. Rates are percentages (3.85 means 3.85%).
type LoanTerms struct {
	Principal        decimal.Decimal  `yaml:"principal" json:"principal"`
	AnnualRate       decimal.Decimal  `yaml:"annual_rate" json:"annual_rate"`
	TermYears        int              `yaml:"term_years" json:"term_years"`
	InsuranceRate    decimal.Decimal  `yaml:"insurance_rate" json:"insurance_rate"`
	PaymentFrequency PaymentFrequency `yaml:"payment_frequency" json:"payment_frequency"`
	StartDate        time.Time        `yaml:"start_date" json:"start_date"`

	// Origination fees: broker, guarantee and file fees.
	BrokerFees    decimal.Decimal `yaml:"broker_fees,omitempty" json:"broker_fees"`
	GuaranteeFees decimal.Decimal `yaml:"guarantee_fees,omitempty" json:"guarantee_fees"`
	FileFees      decimal.Decimal `yaml:"file_fees,omitempty" json:"file_fees"`
}

// OriginationFees sums the one-off fees charged when the loan is set up.
func (lt LoanTerms) OriginationFees() decimal.Decimal {
	return lt.BrokerFees.Add(lt.GuaranteeFees).Add(lt.FileFees)
}

// TotalPeriods is the number of installments over the whole term.
func (lt LoanTerms) TotalPeriods() int {
	return lt.TermYears * lt.PaymentFrequency.PaymentsPerYear()
}

// Validate checks the terms before any row is generated.
func (lt LoanTerms) Validate() error {
	if !lt.Principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidLoanTerms, lt.Principal.String())
	}
	if lt.TermYears <= 0 {
		return fmt.Errorf("%w: term must be at least one year, got %d", ErrInvalidLoanTerms, lt.TermYears)
	}
	if lt.AnnualRate.IsNegative() {
		return fmt.Errorf("%w: annual rate cannot be negative, got %s", ErrInvalidLoanTerms, lt.AnnualRate.String())
	}
	if lt.InsuranceRate.IsNegative() {
		return fmt.Errorf("%w: insurance rate cannot be negative, got %s", ErrInvalidLoanTerms, lt.InsuranceRate.String())
	}
	if lt.BrokerFees.IsNegative() || lt.GuaranteeFees.IsNegative() || lt.FileFees.IsNegative() {
		return fmt.Errorf("%w: fees cannot be negative", ErrInvalidLoanTerms)
	}
	if !lt.PaymentFrequency.Valid() {
		return fmt.Errorf("%w: unknown payment frequency %q", ErrInvalidLoanTerms, lt.PaymentFrequency)
	}
	return nil
}

// AmortizationRow is one installment of the amortization table.
type AmortizationRow struct {
	Period              int             `json:"period"`
	Date                time.Time       `json:"date"`
	TotalPayment        decimal.Decimal `json:"total_payment"`
	PrincipalPortion    decimal.Decimal `json:"principal_portion"`
	InterestPortion     decimal.Decimal `json:"interest_portion"`
	InsurancePortion    decimal.Decimal `json:"insurance_portion"`
	RemainingBalance    decimal.Decimal `json:"remaining_balance"`
	CumulativePrincipal decimal.Decimal `json:"cumulative_principal"`
	CumulativeInterest  decimal.Decimal `json:"cumulative_interest"`
	CumulativeInsurance decimal.Decimal `json:"cumulative_insurance"`
}

// LoanResult holds every figure derived from one LoanTerms evaluation.
type LoanResult struct {
	BasePayment              decimal.Decimal `json:"base_payment"`
	InsurancePerPeriod       decimal.Decimal `json:"insurance_per_period"`
	MonthlyPaymentEquivalent decimal.Decimal `json:"monthly_payment_equivalent"`
	TotalPayment             decimal.Decimal `json:"total_payment"`
	TotalInterest            decimal.Decimal `json:"total_interest"`
	TotalInsurance           decimal.Decimal `json:"total_insurance"`
	TotalFees                decimal.Decimal `json:"total_fees"`
	TotalCost                decimal.Decimal `json:"total_cost"`

	// EffectiveRateApprox is total cost per year over principal, in percent. It is not an actuarial APR.
	EffectiveRateApprox decimal.Decimal `json:"effective_rate_approx"`

	// DebtServiceRatio and MaxBorrowCapacity are null when the income inputs are missing or zero.
	DebtServiceRatio  decimal.NullDecimal `json:"debt_service_ratio"`
	MaxBorrowCapacity decimal.NullDecimal `json:"max_borrow_capacity"`

	EndDate           time.Time         `json:"end_date"`
	AmortizationTable []AmortizationRow `json:"amortization_table,omitempty"`
}

// Summary returns a copy without the per-period table.
func (lr LoanResult) Summary() LoanResult {
	lr.AmortizationTable = nil
	return lr
}

// Rounded returns a copy with every currency and percent field rounded to cents for export.
func (lr LoanResult) Rounded() LoanResult {
	out := lr
	out.BasePayment = lr.BasePayment.Round(2)
	out.InsurancePerPeriod = lr.InsurancePerPeriod.Round(2)
	out.MonthlyPaymentEquivalent = lr.MonthlyPaymentEquivalent.Round(2)
	out.TotalPayment = lr.TotalPayment.Round(2)
	out.TotalInterest = lr.TotalInterest.Round(2)
	out.TotalInsurance = lr.TotalInsurance.Round(2)
	out.TotalFees = lr.TotalFees.Round(2)
	out.TotalCost = lr.TotalCost.Round(2)
	out.EffectiveRateApprox = lr.EffectiveRateApprox.Round(2)
	out.DebtServiceRatio = roundNull(lr.DebtServiceRatio)
	out.MaxBorrowCapacity = roundNull(lr.MaxBorrowCapacity)
	if lr.AmortizationTable != nil {
		out.AmortizationTable = make([]AmortizationRow, len(lr.AmortizationTable))
		for i, row := range lr.AmortizationTable {
			out.AmortizationTable[i] = row.Rounded()
		}
	}
	return out
}

// Rounded returns a copy of the row rounded to cents.
func (r AmortizationRow) Rounded() AmortizationRow {
	r.TotalPayment = r.TotalPayment.Round(2)
	r.PrincipalPortion = r.PrincipalPortion.Round(2)
	r.InterestPortion = r.InterestPortion.Round(2)
	r.InsurancePortion = r.InsurancePortion.Round(2)
	r.RemainingBalance = r.RemainingBalance.Round(2)
	r.CumulativePrincipal = r.CumulativePrincipal.Round(2)
	r.CumulativeInterest = r.CumulativeInterest.Round(2)
	r.CumulativeInsurance = r.CumulativeInsurance.Round(2)
	return r
}

func roundNull(n decimal.NullDecimal) decimal.NullDecimal {
	if !n.Valid {
		return n
	}
	return decimal.NullDecimal{Decimal: n.Decimal.Round(2), Valid: true}
}
