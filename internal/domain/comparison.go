package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RankTag marks where an entry sits on one comparison metric.
type RankTag string

const (
	RankBest    RankTag = "best"
	RankWorst   RankTag = "worst"
	RankNeutral RankTag = "neutral"
)

// ComparisonInput is one labelled offer submitted for comparison.
type ComparisonInput struct {
	Label string    `yaml:"label" json:"label"`
	Terms LoanTerms `yaml:"terms" json:"terms"`
}

// RankTags holds the tag of an entry for each ranked metric.
type RankTags struct {
	MonthlyPayment      RankTag `json:"monthly_payment"`
	TotalCost           RankTag `json:"total_cost"`
	EffectiveRateApprox RankTag `json:"effective_rate_approx"`
}

// ComparisonEntry is the evaluated form of a ComparisonInput. Result carries aggregates only.
// A failed entry has Err set and no Result; it is left out of ranking.
type ComparisonEntry struct {
	Label  string      `json:"label"`
	Terms  LoanTerms   `json:"terms"`
	Result *LoanResult `json:"result,omitempty"`
	Ranks  RankTags    `json:"ranks"`

	// Savings is baseline.TotalCost - entry.TotalCost; null for the baseline itself and when
	// either side failed.
	Savings decimal.NullDecimal `json:"savings"`
	// BreakEven is where the cumulative cost of this entry crosses the baseline's, if it does.
	BreakEven *CostBreakEven `json:"break_even,omitempty"`

	IsBaseline bool   `json:"is_baseline"`
	Err        error  `json:"-"`
	Error      string `json:"error,omitempty"`
}

// OK reports whether the entry was evaluated successfully.
func (ce ComparisonEntry) OK() bool {
	return ce.Err == nil && ce.Result != nil
}

// LoanComparison groups the evaluated entries with a few derived highlights.
type LoanComparison struct {
	Entries []ComparisonEntry `json:"entries"`

	// BestOverall is the label of the cheapest entry by total cost (empty if every entry failed).
	BestOverall string `json:"best_overall"`
	// MaxSavings is the largest positive saving against the baseline.
	MaxSavings decimal.Decimal `json:"max_savings"`
}

// Failed returns the entries that could not be evaluated.
func (lc LoanComparison) Failed() []ComparisonEntry {
	var out []ComparisonEntry
	for _, e := range lc.Entries {
		if !e.OK() {
			out = append(out, e)
		}
	}
	return out
}

// CostBreakEven locates the month at which two offers have cost the same so far
// (fees plus interest and insurance paid). Before it one offer is cheaper, after it the other.
type CostBreakEven struct {
	// Month counts calendar months from the loan start
	Month int       `json:"month"`
	Date  time.Time `json:"date"`
	// Fraction (0..1] of the month at which the crossover happens
	Fraction       decimal.Decimal `json:"fraction_of_month"`
	CumulativeCost decimal.Decimal `json:"cumulative_cost"`
}
