package output

import (
	"bytes"
	"encoding/csv"

	"github.com/immocalc/realty-calculator/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per metric).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Section", "Label", "Metric", "Value"}); err != nil {
		return nil, err
	}
	var rows [][]string
	add := func(section, label, metric, value string) {
		rows = append(rows, []string{section, label, metric, value})
	}

	if l := report.Loan; l != nil {
		r := l.Result
		add("loan", "", "base_payment", r.BasePayment.StringFixed(2))
		add("loan", "", "insurance_per_period", r.InsurancePerPeriod.StringFixed(2))
		add("loan", "", "monthly_payment_equivalent", r.MonthlyPaymentEquivalent.StringFixed(2))
		add("loan", "", "total_payment", r.TotalPayment.StringFixed(2))
		add("loan", "", "total_interest", r.TotalInterest.StringFixed(2))
		add("loan", "", "total_insurance", r.TotalInsurance.StringFixed(2))
		add("loan", "", "total_fees", r.TotalFees.StringFixed(2))
		add("loan", "", "total_cost", r.TotalCost.StringFixed(2))
		add("loan", "", "effective_rate_approx", r.EffectiveRateApprox.StringFixed(2))
		add("loan", "", "debt_service_ratio", nullToString(r.DebtServiceRatio))
		add("loan", "", "max_borrow_capacity", nullToString(r.MaxBorrowCapacity))
	}
	if c := report.Comparison; c != nil {
		for _, e := range c.Entries {
			if !e.OK() {
				add("comparison", e.Label, "error", e.Error)
				continue
			}
			add("comparison", e.Label, "is_baseline", boolToString(e.IsBaseline))
			add("comparison", e.Label, "monthly_payment_equivalent", e.Result.MonthlyPaymentEquivalent.StringFixed(2))
			add("comparison", e.Label, "total_cost", e.Result.TotalCost.StringFixed(2))
			add("comparison", e.Label, "effective_rate_approx", e.Result.EffectiveRateApprox.StringFixed(2))
			add("comparison", e.Label, "rank_monthly_payment", string(e.Ranks.MonthlyPayment))
			add("comparison", e.Label, "rank_total_cost", string(e.Ranks.TotalCost))
			add("comparison", e.Label, "rank_effective_rate", string(e.Ranks.EffectiveRateApprox))
			add("comparison", e.Label, "savings", nullToString(e.Savings))
			if e.BreakEven != nil {
				add("comparison", e.Label, "break_even_month", intToString(e.BreakEven.Month))
			}
		}
	}
	if inv := report.Investment; inv != nil {
		r := inv.Result
		add("investment", "", "total_investment", r.TotalInvestment.StringFixed(2))
		add("investment", "", "initial_equity", r.InitialEquity.StringFixed(2))
		add("investment", "", "over_leveraged", boolToString(r.OverLeveraged))
		add("investment", "", "effective_monthly_rent", r.EffectiveMonthlyRent.StringFixed(2))
		add("investment", "", "monthly_expenses", r.MonthlyExpenses.StringFixed(2))
		add("investment", "", "monthly_loan_payment", r.MonthlyLoanPayment.StringFixed(2))
		add("investment", "", "monthly_cash_flow", r.MonthlyCashFlow.StringFixed(2))
		add("investment", "", "annual_cash_flow", r.AnnualCashFlow.StringFixed(2))
		add("investment", "", "gross_yield", nullToString(r.GrossYield))
		add("investment", "", "net_yield", nullToString(r.NetYield))
		add("investment", "", "cash_on_cash_return", nullToString(r.CashOnCashReturn))
		add("investment", "", "payback_period_years", nullToString(r.PaybackPeriodYears))
		add("investment", "", "ten_year_irr_approx", nullToString(r.TenYearIRRApprox))
		add("investment", "", "ten_year_irr_solved", nullToString(r.TenYearIRRSolved))
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
