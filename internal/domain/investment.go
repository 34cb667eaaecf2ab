package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProjectionBalanceMode selects how the outstanding loan is estimated in the ten-year projection.
type ProjectionBalanceMode string

const (
	// BalanceLinear uses principal × (1 − year/term) × 1.1, the historical approximation.
	BalanceLinear ProjectionBalanceMode = "linear"
	// BalanceSchedule reads the remaining balance from the amortization table.
	BalanceSchedule ProjectionBalanceMode = "schedule"
)

// InvestmentParameters describe a buy-to-let operation. Percent fields are in percent.
type InvestmentParameters struct {
	// Acquisition
	Price      decimal.Decimal `yaml:"price" json:"price"`
	NotaryFees decimal.Decimal `yaml:"notary_fees" json:"notary_fees"`
	Renovation decimal.Decimal `yaml:"renovation" json:"renovation"`
	Furniture  decimal.Decimal `yaml:"furniture" json:"furniture"`

	// Recurring charges. ManagementFee is monthly, the others are annual.
	PropertyTax          decimal.Decimal `yaml:"property_tax" json:"property_tax"`
	CondoFees            decimal.Decimal `yaml:"condo_fees" json:"condo_fees"`
	Insurance            decimal.Decimal `yaml:"insurance" json:"insurance"`
	MaintenanceProvision decimal.Decimal `yaml:"maintenance_provision" json:"maintenance_provision"`
	ManagementFee        decimal.Decimal `yaml:"management_fee" json:"management_fee"`

	// Rental terms
	MonthlyRent decimal.Decimal `yaml:"monthly_rent" json:"monthly_rent"`
	VacancyRate decimal.Decimal `yaml:"vacancy_rate" json:"vacancy_rate"`
	UnpaidRate  decimal.Decimal `yaml:"unpaid_rate" json:"unpaid_rate"`

	Financing        LoanTerms       `yaml:"financing" json:"financing"`
	AppreciationRate decimal.Decimal `yaml:"appreciation_rate" json:"appreciation_rate"`

	ProjectionBalance ProjectionBalanceMode `yaml:"projection_balance,omitempty" json:"projection_balance,omitempty"`
}

// TotalInvestment is price plus notary, renovation and furniture.
func (ip InvestmentParameters) TotalInvestment() decimal.Decimal {
	return ip.Price.Add(ip.NotaryFees).Add(ip.Renovation).Add(ip.Furniture)
}

// Validate rejects negative costs and haircuts outside [0, 100]. Zero values are accepted.
func (ip InvestmentParameters) Validate() error {
	costs := []struct {
		name  string
		value decimal.Decimal
	}{
		{"price", ip.Price},
		{"notary_fees", ip.NotaryFees},
		{"renovation", ip.Renovation},
		{"furniture", ip.Furniture},
		{"property_tax", ip.PropertyTax},
		{"condo_fees", ip.CondoFees},
		{"insurance", ip.Insurance},
		{"maintenance_provision", ip.MaintenanceProvision},
		{"management_fee", ip.ManagementFee},
		{"monthly_rent", ip.MonthlyRent},
	}
	for _, c := range costs {
		if c.value.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative", ErrInvalidInvestment, c.name)
		}
	}
	hundred := decimal.NewFromInt(100)
	if ip.VacancyRate.IsNegative() || ip.VacancyRate.GreaterThan(hundred) {
		return fmt.Errorf("%w: vacancy rate must be between 0 and 100", ErrInvalidInvestment)
	}
	if ip.UnpaidRate.IsNegative() || ip.UnpaidRate.GreaterThan(hundred) {
		return fmt.Errorf("%w: unpaid rate must be between 0 and 100", ErrInvalidInvestment)
	}
	switch ip.ProjectionBalance {
	case "", BalanceLinear, BalanceSchedule:
	default:
		return fmt.Errorf("%w: projection balance must be 'linear' or 'schedule'", ErrInvalidInvestment)
	}
	return nil
}

// ProjectionYear is one point of the ten-year projection (year 0 is the purchase).
type ProjectionYear struct {
	Year               int             `json:"year"`
	PropertyValue      decimal.Decimal `json:"property_value"`
	LoanRemaining      decimal.Decimal `json:"loan_remaining"`
	CumulativeCashFlow decimal.Decimal `json:"cumulative_cash_flow"`
	NetWorth           decimal.Decimal `json:"net_worth"`
}

// InvestmentResult holds the profitability figures. Null fields are undefined ratios.
type InvestmentResult struct {
	TotalInvestment decimal.Decimal `json:"total_investment"`
	InitialEquity   decimal.Decimal `json:"initial_equity"`
	// OverLeveraged is set when the loan covers the whole investment or more.
	OverLeveraged bool `json:"over_leveraged"`

	EffectiveMonthlyRent decimal.Decimal `json:"effective_monthly_rent"`
	MonthlyExpenses      decimal.Decimal `json:"monthly_expenses"`
	MonthlyLoanPayment   decimal.Decimal `json:"monthly_loan_payment"`
	MonthlyCashFlow      decimal.Decimal `json:"monthly_cash_flow"`
	AnnualCashFlow       decimal.Decimal `json:"annual_cash_flow"`

	GrossYield         decimal.NullDecimal `json:"gross_yield"`
	NetYield           decimal.NullDecimal `json:"net_yield"`
	CashOnCashReturn   decimal.NullDecimal `json:"cash_on_cash_return"`
	PaybackPeriodYears decimal.NullDecimal `json:"payback_period_years"`

	// TenYearIRRApprox is the geometric-mean shortcut, in percent. TenYearIRRSolved is the root of
	// the ten-year cash-flow NPV, in percent.
	TenYearIRRApprox decimal.NullDecimal `json:"ten_year_irr_approx"`
	TenYearIRRSolved decimal.NullDecimal `json:"ten_year_irr_solved"`

	TenYearProjection []ProjectionYear `json:"ten_year_projection"`
	Loan              LoanResult       `json:"loan"`
}

// Rounded returns a copy rounded to cents for export.
func (ir InvestmentResult) Rounded() InvestmentResult {
	out := ir
	out.TotalInvestment = ir.TotalInvestment.Round(2)
	out.InitialEquity = ir.InitialEquity.Round(2)
	out.EffectiveMonthlyRent = ir.EffectiveMonthlyRent.Round(2)
	out.MonthlyExpenses = ir.MonthlyExpenses.Round(2)
	out.MonthlyLoanPayment = ir.MonthlyLoanPayment.Round(2)
	out.MonthlyCashFlow = ir.MonthlyCashFlow.Round(2)
	out.AnnualCashFlow = ir.AnnualCashFlow.Round(2)
	out.GrossYield = roundNull(ir.GrossYield)
	out.NetYield = roundNull(ir.NetYield)
	out.CashOnCashReturn = roundNull(ir.CashOnCashReturn)
	out.PaybackPeriodYears = roundNull(ir.PaybackPeriodYears)
	out.TenYearIRRApprox = roundNull(ir.TenYearIRRApprox)
	out.TenYearIRRSolved = roundNull(ir.TenYearIRRSolved)
	out.TenYearProjection = make([]ProjectionYear, len(ir.TenYearProjection))
	for i, y := range ir.TenYearProjection {
		out.TenYearProjection[i] = ProjectionYear{
			Year:               y.Year,
			PropertyValue:      y.PropertyValue.Round(2),
			LoanRemaining:      y.LoanRemaining.Round(2),
			CumulativeCashFlow: y.CumulativeCashFlow.Round(2),
			NetWorth:           y.NetWorth.Round(2),
		}
	}
	out.Loan = ir.Loan.Rounded()
	return out
}
