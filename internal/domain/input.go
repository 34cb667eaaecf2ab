package domain

// CalculationInput is the content of a calculation file. Each section is optional but at
// least one must be present.
type CalculationInput struct {
	Loan       *LoanInput            `yaml:"loan,omitempty" json:"loan,omitempty"`
	Comparison *ComparisonSection    `yaml:"comparison,omitempty" json:"comparison,omitempty"`
	Investment *InvestmentParameters `yaml:"investment,omitempty" json:"investment,omitempty"`
}

// LoanInput is a single loan simulation with the optional affordability inputs.
type LoanInput struct {
	Terms    LoanTerms `yaml:"terms" json:"terms"`
	Borrower *Borrower `yaml:"borrower,omitempty" json:"borrower,omitempty"`
}

// ComparisonSection lists the offers to compare. With Suggest set, only the first offer is
// read and the alternatives are generated from it.
type ComparisonSection struct {
	Offers  []ComparisonInput `yaml:"offers" json:"offers"`
	Suggest bool              `yaml:"suggest,omitempty" json:"suggest,omitempty"`
}
