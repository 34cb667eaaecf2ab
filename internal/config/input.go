package config

import (
	"fmt"
	"os"

	"github.com/immocalc/realty-calculator/internal/calculation"
	"github.com/immocalc/realty-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of calculation input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a calculation input from a YAML (or JSON) file, fills defaults and validates it
func (ip *InputParser) LoadFromFile(filename string) (*domain.CalculationInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes a calculation input document, fills defaults and validates it
func (ip *InputParser) Parse(data []byte) (*domain.CalculationInput, error) {
	var input domain.CalculationInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.ApplyDefaults(&input)

	if err := ip.ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &input, nil
}

// ApplyDefaults fills the values a form would prefill: start date, frequency and the notary
// estimate when no notary fees were given.
func (ip *InputParser) ApplyDefaults(input *domain.CalculationInput) {
	if input.Loan != nil {
		defaultTerms(&input.Loan.Terms)
	}
	if input.Comparison != nil {
		for i := range input.Comparison.Offers {
			defaultTerms(&input.Comparison.Offers[i].Terms)
		}
	}
	if inv := input.Investment; inv != nil {
		if !inv.Financing.Principal.IsZero() {
			defaultTerms(&inv.Financing)
		}
		if inv.ProjectionBalance == "" {
			inv.ProjectionBalance = domain.BalanceLinear
		}
		if inv.NotaryFees.IsZero() && calculation.ShouldReplaceNotaryEstimate(inv.NotaryFees, inv.Price) {
			inv.NotaryFees = calculation.EstimateNotaryFees(inv.Price)
		}
	}
}

func defaultTerms(terms *domain.LoanTerms) {
	if terms.StartDate.IsZero() {
		terms.StartDate = calculation.DefaultStartDate()
	}
	if terms.PaymentFrequency == "" {
		terms.PaymentFrequency = domain.FrequencyMonthly
	}
}

// ValidateInput validates the loaded input. Comparison offers are only checked for count:
// an invalid offer is reported on its own entry when the comparison runs.
func (ip *InputParser) ValidateInput(input *domain.CalculationInput) error {
	if input.Loan == nil && input.Comparison == nil && input.Investment == nil {
		return fmt.Errorf("no loan, comparison or investment section provided")
	}

	if input.Loan != nil {
		if err := input.Loan.Terms.Validate(); err != nil {
			return fmt.Errorf("loan: %w", err)
		}
		if err := ip.validateBorrower(input.Loan.Borrower); err != nil {
			return fmt.Errorf("loan borrower: %w", err)
		}
	}

	if input.Comparison != nil {
		if err := ip.validateComparison(input.Comparison); err != nil {
			return fmt.Errorf("comparison: %w", err)
		}
	}

	if inv := input.Investment; inv != nil {
		if err := inv.Validate(); err != nil {
			return fmt.Errorf("investment: %w", err)
		}
		if !inv.Financing.Principal.IsZero() {
			if err := inv.Financing.Validate(); err != nil {
				return fmt.Errorf("investment financing: %w", err)
			}
		}
	}

	return nil
}

func (ip *InputParser) validateBorrower(b *domain.Borrower) error {
	if b == nil {
		return nil
	}
	if b.MonthlyIncome != nil && b.MonthlyIncome.IsNegative() {
		return fmt.Errorf("monthly income cannot be negative")
	}
	if b.MaxDebtRatio != nil {
		if b.MaxDebtRatio.IsNegative() || b.MaxDebtRatio.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("max debt ratio must be between 0 and 100")
		}
		if b.MonthlyIncome == nil {
			return fmt.Errorf("max debt ratio requires a monthly income")
		}
	}
	return nil
}

func (ip *InputParser) validateComparison(c *domain.ComparisonSection) error {
	if c.Suggest {
		if len(c.Offers) == 0 {
			return fmt.Errorf("%w: suggest mode needs a baseline offer", domain.ErrComparisonSizeViolation)
		}
		return nil
	}
	if n := len(c.Offers); n < domain.MinComparisonEntries || n > domain.MaxComparisonEntries {
		return fmt.Errorf("%w: expected %d to %d offers, got %d",
			domain.ErrComparisonSizeViolation, domain.MinComparisonEntries, domain.MaxComparisonEntries, n)
	}
	return nil
}

// SaveInput writes a calculation input as YAML
func (ip *InputParser) SaveInput(filename string, input *domain.CalculationInput) error {
	data, err := yaml.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to encode input: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleInput creates an example input covering every section
func (ip *InputParser) CreateExampleInput() *domain.CalculationInput {
	start := calculation.DefaultStartDate()

	baseline := domain.LoanTerms{
		Principal:        decimal.NewFromInt(200000),
		AnnualRate:       decimal.NewFromFloat(3.85),
		TermYears:        25,
		InsuranceRate:    decimal.NewFromFloat(0.36),
		PaymentFrequency: domain.FrequencyMonthly,
		StartDate:        start,
		FileFees:         decimal.NewFromInt(1000),
		GuaranteeFees:    decimal.NewFromInt(2200),
	}

	brokered := baseline
	brokered.AnnualRate = decimal.NewFromFloat(3.45)
	brokered.BrokerFees = decimal.NewFromInt(2500)

	shorter := baseline
	shorter.TermYears = 20
	shorter.AnnualRate = decimal.NewFromFloat(3.70)

	price := decimal.NewFromInt(200000)
	financing := baseline
	financing.Principal = decimal.NewFromInt(180000)
	financing.TermYears = 20

	return &domain.CalculationInput{
		Loan: &domain.LoanInput{
			Terms:    baseline,
			Borrower: domain.NewBorrower(decimal.NewFromInt(5200), decimal.NewFromInt(35)),
		},
		Comparison: &domain.ComparisonSection{
			Offers: []domain.ComparisonInput{
				{Label: "Bank offer", Terms: baseline},
				{Label: "Broker offer", Terms: brokered},
				{Label: "20 years", Terms: shorter},
			},
		},
		Investment: &domain.InvestmentParameters{
			Price:                price,
			NotaryFees:           calculation.EstimateNotaryFees(price),
			Renovation:           decimal.NewFromInt(10000),
			Furniture:            decimal.NewFromInt(5000),
			PropertyTax:          decimal.NewFromInt(1200),
			CondoFees:            decimal.NewFromInt(1800),
			Insurance:            decimal.NewFromInt(300),
			MaintenanceProvision: decimal.NewFromInt(600),
			ManagementFee:        decimal.NewFromInt(70),
			MonthlyRent:          decimal.NewFromInt(1150),
			VacancyRate:          decimal.NewFromInt(5),
			UnpaidRate:           decimal.NewFromInt(2),
			Financing:            financing,
			AppreciationRate:     decimal.NewFromFloat(1.5),
			ProjectionBalance:    domain.BalanceLinear,
		},
	}
}
