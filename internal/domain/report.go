package domain

import "time"

// Report is everything an output formatter may render. Sections are optional.
type Report struct {
	Title       string            `json:"title"`
	GeneratedAt time.Time         `json:"generated_at"`
	Loan        *LoanReport       `json:"loan,omitempty"`
	Comparison  *LoanComparison   `json:"comparison,omitempty"`
	Investment  *InvestmentReport `json:"investment,omitempty"`
	RateHistory []RatePoint       `json:"rate_history,omitempty"`
	Assumptions []string          `json:"assumptions,omitempty"`
}

// LoanReport pairs loan inputs with their evaluation.
type LoanReport struct {
	Terms  LoanTerms  `json:"terms"`
	Result LoanResult `json:"result"`
}

// InvestmentReport pairs investment inputs with their evaluation.
type InvestmentReport struct {
	Parameters InvestmentParameters `json:"parameters"`
	Result     InvestmentResult     `json:"result"`
}
