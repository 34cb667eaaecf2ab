package output

import (
	"encoding/json"

	"github.com/immocalc/realty-calculator/internal/domain"
)

// JSONFormatter serializes the report as pretty-printed JSON, with amounts rounded to cents.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	return json.MarshalIndent(roundedReport(report), "", "  ")
}

// roundedReport copies the report with every result rounded; inputs are left untouched.
func roundedReport(report *domain.Report) *domain.Report {
	out := *report
	if report.Loan != nil {
		loan := *report.Loan
		loan.Result = loan.Result.Rounded()
		out.Loan = &loan
	}
	if report.Comparison != nil {
		cmp := *report.Comparison
		cmp.MaxSavings = cmp.MaxSavings.Round(2)
		cmp.Entries = make([]domain.ComparisonEntry, len(report.Comparison.Entries))
		for i, e := range report.Comparison.Entries {
			if e.Result != nil {
				r := e.Result.Rounded()
				e.Result = &r
			}
			if e.Savings.Valid {
				e.Savings.Decimal = e.Savings.Decimal.Round(2)
			}
			if e.BreakEven != nil {
				be := *e.BreakEven
				be.Fraction = be.Fraction.Round(4)
				be.CumulativeCost = be.CumulativeCost.Round(2)
				e.BreakEven = &be
			}
			cmp.Entries[i] = e
		}
		out.Comparison = &cmp
	}
	if report.Investment != nil {
		inv := *report.Investment
		inv.Result = inv.Result.Rounded()
		out.Investment = &inv
	}
	return &out
}
