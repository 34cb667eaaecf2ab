package output

import "github.com/immocalc/realty-calculator/internal/domain"

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs
// when the report does not carry its own.
var DefaultAssumptions = []string{
	"Amounts are in euros and rounded to the cent for display only",
	"Interest accrues on the outstanding balance at annual rate / payments per year",
	"Borrower insurance is charged flat on the original principal",
	"Effective rate is an approximation, not an actuarial APR",
	"Notary fees are estimated at 7.5% of the price when not provided",
}

// assumptionsFor returns the report's own assumptions, falling back to the defaults.
func assumptionsFor(report *domain.Report) []string {
	if len(report.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return report.Assumptions
}
