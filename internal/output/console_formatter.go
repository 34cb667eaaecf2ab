package output

import (
	"bytes"
	"fmt"

	"github.com/immocalc/realty-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

var decimalFour = decimal.NewFromInt(4)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "REAL ESTATE SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if l := report.Loan; l != nil {
		fmt.Fprintf(&buf, "Loan: monthly=%s total_cost=%s effective_rate=%s dsr=%s\n",
			FormatCurrency(l.Result.MonthlyPaymentEquivalent),
			FormatCurrency(l.Result.TotalCost),
			FormatPercentage(l.Result.EffectiveRateApprox),
			FormatNullPercentage(l.Result.DebtServiceRatio))
	}
	if c := report.Comparison; c != nil {
		for _, e := range c.Entries {
			if !e.OK() {
				fmt.Fprintf(&buf, "%s: error: %s\n", e.Label, e.Error)
				continue
			}
			fmt.Fprintf(&buf, "%s: monthly=%s total_cost=%s savings=%s\n",
				e.Label,
				FormatCurrency(e.Result.MonthlyPaymentEquivalent),
				FormatCurrency(e.Result.TotalCost),
				FormatNullCurrency(e.Savings))
		}
	}
	if inv := report.Investment; inv != nil {
		r := inv.Result
		fmt.Fprintf(&buf, "Investment: cash_flow=%s/month gross=%s net=%s coc=%s payback=%s\n",
			FormatCurrency(r.MonthlyCashFlow),
			FormatNullPercentage(r.GrossYield),
			FormatNullPercentage(r.NetYield),
			FormatNullPercentage(r.CashOnCashReturn),
			FormatYears(r.PaybackPeriodYears))
	}
	rec := Analyze(report)
	if rec.CheapestOffer != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (saves %s)\n", rec.CheapestOffer, FormatCurrency(rec.SavingsVsBase))
	}
	if rec.Verdict != "" {
		fmt.Fprintf(&buf, "Verdict: %s\n", rec.Verdict)
	}
	return buf.Bytes(), nil
}
