package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/immocalc/realty-calculator/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	title := strings.ToUpper(report.Title)
	if title == "" {
		title = "REAL ESTATE FINANCIAL REPORT"
	}
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	if report.Loan != nil {
		writeLoanDetail(&buf, report.Loan)
	}
	if report.Comparison != nil {
		writeComparisonDetail(&buf, report.Comparison)
	}
	if report.Investment != nil {
		writeInvestmentDetail(&buf, report.Investment)
	}
	if len(report.RateHistory) > 0 {
		writeRateHistory(&buf, report.RateHistory)
	}

	rec := Analyze(report)
	if rec.CheapestOffer != "" || rec.Verdict != "" {
		fmt.Fprintln(&buf, "RECOMMENDATION")
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		if rec.CheapestOffer != "" {
			fmt.Fprintf(&buf, "Cheapest offer: %s (total cost %s, saves %s against the baseline)\n",
				rec.CheapestOffer, FormatCurrency(rec.CheapestCost), FormatCurrency(rec.SavingsVsBase))
			fmt.Fprintf(&buf, "Lowest monthly payment: %s (%s)\n", rec.LowestPayment, FormatCurrency(rec.LowestPaymentAmt))
		}
		if rec.Verdict != "" {
			fmt.Fprintf(&buf, "Investment: %s\n", rec.Verdict)
		}
	}
	return buf.Bytes(), nil
}

func writeLoanDetail(w io.Writer, lr *domain.LoanReport) {
	t, r := lr.Terms, lr.Result
	fmt.Fprintln(w, "LOAN")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Principal:                 %s\n", FormatCurrency(t.Principal))
	fmt.Fprintf(w, "Annual rate:               %s\n", FormatPercentage(t.AnnualRate))
	fmt.Fprintf(w, "Insurance rate:            %s\n", FormatPercentage(t.InsuranceRate))
	fmt.Fprintf(w, "Term:                      %d years (%d %s installments)\n", t.TermYears, t.TotalPeriods(), t.PaymentFrequency)
	fmt.Fprintf(w, "Start / end:               %s / %s\n", t.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Installment (excl. ins.):  %s\n", FormatCurrency(r.BasePayment))
	fmt.Fprintf(w, "Insurance per installment: %s\n", FormatCurrency(r.InsurancePerPeriod))
	fmt.Fprintf(w, "Monthly equivalent:        %s\n", FormatCurrency(r.MonthlyPaymentEquivalent))
	fmt.Fprintf(w, "Total repaid:              %s\n", FormatCurrency(r.TotalPayment))
	fmt.Fprintf(w, "Total interest:            %s\n", FormatCurrency(r.TotalInterest))
	fmt.Fprintf(w, "Total insurance:           %s\n", FormatCurrency(r.TotalInsurance))
	fmt.Fprintf(w, "Fees:                      %s\n", FormatCurrency(r.TotalFees))
	fmt.Fprintf(w, "Total cost of credit:      %s\n", FormatCurrency(r.TotalCost))
	fmt.Fprintf(w, "Effective rate (approx.):  %s\n", FormatPercentage(r.EffectiveRateApprox))
	fmt.Fprintf(w, "Debt service ratio:        %s\n", FormatNullPercentage(r.DebtServiceRatio))
	fmt.Fprintf(w, "Max borrowing capacity:    %s\n", FormatNullCurrency(r.MaxBorrowCapacity))
	fmt.Fprintln(w)

	if len(r.AmortizationTable) > 0 {
		fmt.Fprintln(w, "AMORTIZATION BY YEAR")
		fmt.Fprintln(w, strings.Repeat("-", 50))
		fmt.Fprintf(w, "%-6s %16s %16s %18s\n", "Year", "Principal", "Interest", "Balance")
		ppy := t.PaymentFrequency.PaymentsPerYear()
		var prev domain.AmortizationRow
		for i := ppy - 1; i < len(r.AmortizationTable); i += ppy {
			row := r.AmortizationTable[i]
			fmt.Fprintf(w, "%-6d %16s %16s %18s\n", row.Period/ppy,
				FormatCurrency(row.CumulativePrincipal.Sub(prev.CumulativePrincipal)),
				FormatCurrency(row.CumulativeInterest.Sub(prev.CumulativeInterest)),
				FormatCurrency(row.RemainingBalance))
			prev = row
		}
		fmt.Fprintln(w)
	}
}

func writeComparisonDetail(w io.Writer, c *domain.LoanComparison) {
	fmt.Fprintln(w, "OFFER COMPARISON")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "%-20s %8s %6s %14s %16s %10s %16s\n", "Offer", "Rate", "Years", "Monthly", "Total cost", "Eff. rate", "Savings")
	for _, e := range c.Entries {
		label := e.Label
		if e.IsBaseline {
			label += " *"
		}
		if !e.OK() {
			fmt.Fprintf(w, "%-20s  error: %s\n", label, e.Error)
			continue
		}
		fmt.Fprintf(w, "%-20s %8s %6d %14s %16s %10s %16s\n", label,
			FormatPercentage(e.Terms.AnnualRate), e.Terms.TermYears,
			FormatCurrency(e.Result.MonthlyPaymentEquivalent)+rankMark(e.Ranks.MonthlyPayment),
			FormatCurrency(e.Result.TotalCost)+rankMark(e.Ranks.TotalCost),
			FormatPercentage(e.Result.EffectiveRateApprox)+rankMark(e.Ranks.EffectiveRateApprox),
			FormatNullCurrency(e.Savings))
	}
	fmt.Fprintln(w, "(* baseline, + best, - worst)")
	for _, e := range c.Entries {
		if e.BreakEven != nil {
			fmt.Fprintf(w, "%s catches up with the baseline after %d months (%s), at %s spent\n",
				e.Label, e.BreakEven.Month, e.BreakEven.Date.Format("2006-01"), FormatCurrency(e.BreakEven.CumulativeCost))
		}
	}
	fmt.Fprintln(w)
}

func rankMark(tag domain.RankTag) string {
	switch tag {
	case domain.RankBest:
		return "+"
	case domain.RankWorst:
		return "-"
	}
	return " "
}

func writeInvestmentDetail(w io.Writer, ir *domain.InvestmentReport) {
	p, r := ir.Parameters, ir.Result
	fmt.Fprintln(w, "RENTAL INVESTMENT")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Price:                     %s\n", FormatCurrency(p.Price))
	fmt.Fprintf(w, "Notary fees:               %s\n", FormatCurrency(p.NotaryFees))
	fmt.Fprintf(w, "Renovation / furniture:    %s / %s\n", FormatCurrency(p.Renovation), FormatCurrency(p.Furniture))
	fmt.Fprintf(w, "Total investment:          %s\n", FormatCurrency(r.TotalInvestment))
	fmt.Fprintf(w, "Initial equity:            %s\n", FormatCurrency(r.InitialEquity))
	if r.OverLeveraged {
		fmt.Fprintln(w, "WARNING: financing covers the whole investment")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Effective monthly rent:    %s\n", FormatCurrency(r.EffectiveMonthlyRent))
	fmt.Fprintf(w, "Monthly expenses:          %s\n", FormatCurrency(r.MonthlyExpenses))
	fmt.Fprintf(w, "Monthly loan payment:      %s\n", FormatCurrency(r.MonthlyLoanPayment))
	fmt.Fprintf(w, "Monthly cash flow:         %s\n", FormatCurrency(r.MonthlyCashFlow))
	fmt.Fprintf(w, "Annual cash flow:          %s\n", FormatCurrency(r.AnnualCashFlow))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Gross yield:               %s\n", FormatNullPercentage(r.GrossYield))
	fmt.Fprintf(w, "Net yield:                 %s\n", FormatNullPercentage(r.NetYield))
	fmt.Fprintf(w, "Cash-on-cash return:       %s\n", FormatNullPercentage(r.CashOnCashReturn))
	fmt.Fprintf(w, "Payback period:            %s\n", FormatYears(r.PaybackPeriodYears))
	fmt.Fprintf(w, "10-year IRR (approx.):     %s\n", FormatNullPercentage(r.TenYearIRRApprox))
	fmt.Fprintf(w, "10-year IRR (solved):      %s\n", FormatNullPercentage(r.TenYearIRRSolved))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "TEN-YEAR PROJECTION")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "%-6s %18s %18s %18s %18s\n", "Year", "Property", "Loan", "Cum. cash flow", "Net worth")
	for _, y := range r.TenYearProjection {
		fmt.Fprintf(w, "%-6d %18s %18s %18s %18s\n", y.Year,
			FormatCurrency(y.PropertyValue), FormatCurrency(y.LoanRemaining),
			FormatCurrency(y.CumulativeCashFlow), FormatCurrency(y.NetWorth))
	}
	fmt.Fprintln(w)
}

func writeRateHistory(w io.Writer, points []domain.RatePoint) {
	fmt.Fprintln(w, "AVERAGE MORTGAGE RATES")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for _, p := range points {
		fmt.Fprintf(w, "%d  %7s  %s\n", p.Year, FormatPercentage(p.Rate), strings.Repeat("#", int(p.Rate.Mul(decimalFour).IntPart())))
	}
	fmt.Fprintln(w)
}
