package calculation

import (
	"context"
	"fmt"

	"github.com/immocalc/realty-calculator/internal/domain"
)

// CalculationEngine runs the calculators and assembles reports for the output layer.
type CalculationEngine struct {
	RateHistory *RateHistory
	Debug       bool // Enable debug output for detailed calculations
	Logger      Logger
}

// NewCalculationEngine creates a new calculation engine backed by the bundled rate series.
func NewCalculationEngine() *CalculationEngine {
	engine := &CalculationEngine{Logger: NopLogger{}}

	history, err := DefaultRateHistory()
	if err != nil {
		// The series is display-only; reports simply omit it
		engine.Logger.Warnf("Failed to load bundled rate history: %v", err)
	}
	engine.RateHistory = history
	return engine
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) newReport(title string) *domain.Report {
	report := &domain.Report{
		Title:       title,
		GeneratedAt: nowFunc(),
	}
	if ce.RateHistory != nil {
		report.RateHistory = ce.RateHistory.Points
	}
	return report
}

// RunLoan evaluates one loan and wraps it in a report.
func (ce *CalculationEngine) RunLoan(terms domain.LoanTerms, borrower *domain.Borrower) (*domain.Report, error) {
	result, err := EvaluateLoan(terms, borrower)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate loan: %w", err)
	}
	if ce.Debug {
		ce.Logger.Debugf("loan: principal=%s rate=%s%% term=%dy freq=%s payment=%s total_cost=%s",
			terms.Principal, terms.AnnualRate, terms.TermYears, terms.PaymentFrequency,
			result.TotalPayment.StringFixed(2), result.TotalCost.StringFixed(2))
	}

	report := ce.newReport("Loan simulation")
	report.Loan = &domain.LoanReport{Terms: terms, Result: *result}
	report.Assumptions = LoanAssumptions(terms)
	return report, nil
}

// RunComparison evaluates 2 to 5 offers side by side. Offers that fail keep their error in the entry.
func (ce *CalculationEngine) RunComparison(ctx context.Context, inputs []domain.ComparisonInput) (*domain.Report, error) {
	comparison, err := CompareLoans(ctx, inputs)
	if err != nil {
		return nil, err
	}
	return ce.comparisonReport(comparison), nil
}

// RunAlternatives compares a baseline offer against the suggested variations.
func (ce *CalculationEngine) RunAlternatives(ctx context.Context, baseline domain.ComparisonInput) (*domain.Report, error) {
	comparison, err := CompareWithAlternatives(ctx, baseline)
	if err != nil {
		return nil, err
	}
	return ce.comparisonReport(comparison), nil
}

func (ce *CalculationEngine) comparisonReport(comparison *domain.LoanComparison) *domain.Report {
	for _, entry := range comparison.Entries {
		if !entry.OK() {
			ce.Logger.Warnf("offer %q could not be evaluated: %v", entry.Label, entry.Err)
			continue
		}
		if ce.Debug {
			ce.Logger.Debugf("offer %q: payment=%s total_cost=%s rank=%s/%s/%s",
				entry.Label, entry.Result.MonthlyPaymentEquivalent.StringFixed(2), entry.Result.TotalCost.StringFixed(2),
				entry.Ranks.MonthlyPayment, entry.Ranks.TotalCost, entry.Ranks.EffectiveRateApprox)
		}
	}

	report := ce.newReport("Loan comparison")
	report.Comparison = comparison
	if len(comparison.Entries) > 0 {
		report.Assumptions = LoanAssumptions(comparison.Entries[0].Terms)
	}
	return report
}

// RunInvestment evaluates a rental investment and wraps it in a report.
func (ce *CalculationEngine) RunInvestment(params domain.InvestmentParameters) (*domain.Report, error) {
	result, err := EvaluateInvestment(params)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate investment: %w", err)
	}
	if result.OverLeveraged {
		ce.Logger.Warnf("financing exceeds total investment; equity is %s", result.InitialEquity.StringFixed(2))
	}
	if ce.Debug {
		ce.Logger.Debugf("investment: total=%s equity=%s monthly_cf=%s",
			result.TotalInvestment.StringFixed(2), result.InitialEquity.StringFixed(2), result.MonthlyCashFlow.StringFixed(2))
		for _, y := range result.TenYearProjection {
			ce.Logger.Debugf("  year %2d: value=%s loan=%s cumulative_cf=%s net_worth=%s",
				y.Year, y.PropertyValue.StringFixed(2), y.LoanRemaining.StringFixed(2),
				y.CumulativeCashFlow.StringFixed(2), y.NetWorth.StringFixed(2))
		}
	}

	report := ce.newReport("Rental investment")
	report.Investment = &domain.InvestmentReport{Parameters: params, Result: *result}
	report.Assumptions = InvestmentAssumptions(params)
	return report, nil
}
