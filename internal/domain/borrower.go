package domain

import (
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Borrower carries the optional affordability inputs of a loan evaluation.
// Both fields are optional; MaxDebtRatio is a percentage (35 means 35%).
type Borrower struct {
	MonthlyIncome *decimal.Decimal `yaml:"monthly_income,omitempty" json:"monthly_income,omitempty"`
	MaxDebtRatio  *decimal.Decimal `yaml:"max_debt_ratio,omitempty" json:"max_debt_ratio,omitempty"`
}

// UnmarshalYAML implements custom YAML unmarshaling for the optional decimal fields
func (b *Borrower) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		MonthlyIncome *string `yaml:"monthly_income,omitempty"`
		MaxDebtRatio  *string `yaml:"max_debt_ratio,omitempty"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	if aux.MonthlyIncome != nil {
		val, err := decimal.NewFromString(*aux.MonthlyIncome)
		if err != nil {
			return err
		}
		b.MonthlyIncome = &val
	}

	if aux.MaxDebtRatio != nil {
		val, err := decimal.NewFromString(*aux.MaxDebtRatio)
		if err != nil {
			return err
		}
		b.MaxDebtRatio = &val
	}

	return nil
}

// NewBorrower builds a Borrower from plain values.
func NewBorrower(monthlyIncome, maxDebtRatio decimal.Decimal) *Borrower {
	return &Borrower{MonthlyIncome: &monthlyIncome, MaxDebtRatio: &maxDebtRatio}
}
