package output

import (
	"github.com/immocalc/realty-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation summarizes which offer to pick and how the investment looks.
type Recommendation struct {
	// Comparison highlights; empty when the report has no comparison
	CheapestOffer    string
	CheapestCost     decimal.Decimal
	SavingsVsBase    decimal.Decimal
	LowestPayment    string
	LowestPaymentAmt decimal.Decimal
	FailedOffers     int

	// Investment verdict; empty when the report has no investment
	Verdict string
}

// Investment verdicts.
const (
	VerdictSelfFinancing = "self-financing: rent covers charges and the loan"
	VerdictEffort        = "monthly effort required"
	VerdictOverLeveraged = "over-leveraged: the loan covers the whole investment"
)

// Analyze extracts the headline recommendation from a report.
func Analyze(report *domain.Report) Recommendation {
	var rec Recommendation
	if c := report.Comparison; c != nil {
		analyzeComparison(c, &rec)
	}
	if inv := report.Investment; inv != nil {
		switch {
		case inv.Result.OverLeveraged:
			rec.Verdict = VerdictOverLeveraged
		case inv.Result.MonthlyCashFlow.IsNegative():
			rec.Verdict = VerdictEffort
		default:
			rec.Verdict = VerdictSelfFinancing
		}
	}
	return rec
}

func analyzeComparison(c *domain.LoanComparison, rec *Recommendation) {
	var baselineCost decimal.Decimal
	baselineOK := false
	found := false
	for _, e := range c.Entries {
		if !e.OK() {
			rec.FailedOffers++
			continue
		}
		if e.IsBaseline {
			baselineCost = e.Result.TotalCost
			baselineOK = true
		}
		if !found || e.Result.TotalCost.LessThan(rec.CheapestCost) {
			rec.CheapestOffer = e.Label
			rec.CheapestCost = e.Result.TotalCost
		}
		if !found || e.Result.MonthlyPaymentEquivalent.LessThan(rec.LowestPaymentAmt) {
			rec.LowestPayment = e.Label
			rec.LowestPaymentAmt = e.Result.MonthlyPaymentEquivalent
		}
		found = true
	}
	if found && baselineOK {
		rec.SavingsVsBase = baselineCost.Sub(rec.CheapestCost)
	}
}
