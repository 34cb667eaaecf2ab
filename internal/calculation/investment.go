package calculation

import (
	"fmt"
	"math"

	"github.com/immocalc/realty-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectionYears is the horizon of the investment projection.
const ProjectionYears = 10

// linearBalanceMarkup is the fixed factor of the linear outstanding-loan estimate.
var linearBalanceMarkup = decimal.NewFromFloat(1.1)

// EvaluateInvestment computes cash flow, yields and the ten-year projection of a rental purchase.
// A financing principal of zero is a cash purchase: no loan leg is evaluated.
// Ratios whose denominator is zero or negative come back null instead of failing the call.
func EvaluateInvestment(params domain.InvestmentParameters) (*domain.InvestmentResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	res := &domain.InvestmentResult{
		TotalInvestment: params.TotalInvestment(),
	}
	res.InitialEquity = res.TotalInvestment.Sub(params.Financing.Principal)
	res.OverLeveraged = !res.InitialEquity.IsPositive()

	if !params.Financing.Principal.IsZero() {
		loan, err := EvaluateLoan(params.Financing, nil)
		if err != nil {
			return nil, fmt.Errorf("financing: %w", err)
		}
		res.Loan = *loan
		res.MonthlyLoanPayment = loan.MonthlyPaymentEquivalent
	}

	res.EffectiveMonthlyRent = EffectiveMonthlyRent(params.MonthlyRent, params.VacancyRate, params.UnpaidRate)
	res.MonthlyExpenses = MonthlyExpenses(params)
	res.MonthlyCashFlow = res.EffectiveMonthlyRent.Sub(res.MonthlyExpenses).Sub(res.MonthlyLoanPayment)
	res.AnnualCashFlow = res.MonthlyCashFlow.Mul(twelve)

	res.GrossYield = ratioPercent(params.MonthlyRent.Mul(twelve), res.TotalInvestment)
	res.NetYield = ratioPercent(res.EffectiveMonthlyRent.Sub(res.MonthlyExpenses).Mul(twelve), res.TotalInvestment)
	res.CashOnCashReturn = ratioPercent(res.AnnualCashFlow, res.InitialEquity)
	res.PaybackPeriodYears = PaybackPeriod(res.InitialEquity, res.AnnualCashFlow)

	res.TenYearProjection = projectInvestment(params, res)
	res.TenYearIRRApprox = TenYearIRRApprox(res.InitialEquity, res.AnnualCashFlow, res.TotalInvestment, params.AppreciationRate)
	res.TenYearIRRSolved = solvedTenYearIRR(res)

	return res, nil
}

// EffectiveMonthlyRent applies the vacancy and unpaid haircuts to the nominal rent.
func EffectiveMonthlyRent(rent, vacancyRate, unpaidRate decimal.Decimal) decimal.Decimal {
	return rent.Mul(one.Sub(vacancyRate.Div(hundred))).Mul(one.Sub(unpaidRate.Div(hundred)))
}

// MonthlyExpenses spreads the annual charges over twelve months and adds the monthly management fee.
func MonthlyExpenses(p domain.InvestmentParameters) decimal.Decimal {
	annual := p.PropertyTax.Add(p.CondoFees).Add(p.Insurance).Add(p.MaintenanceProvision)
	return annual.Div(twelve).Add(p.ManagementFee)
}

// PaybackPeriod is equity / annual cash flow in years. It is null unless the cash flow is
// positive, and zero when no equity was put in.
func PaybackPeriod(equity, annualCashFlow decimal.Decimal) decimal.NullDecimal {
	if !annualCashFlow.IsPositive() {
		return decimal.NullDecimal{}
	}
	if !equity.IsPositive() {
		return decimal.NullDecimal{Decimal: decimal.Zero, Valid: true}
	}
	return decimal.NullDecimal{Decimal: equity.Div(annualCashFlow), Valid: true}
}

// TenYearIRRApprox is the geometric-mean shortcut ((inflow / equity)^(1/10) - 1) × 100 where
// inflow = ten years of cash flow plus the appreciated property value. It is not a discounted
// cash-flow IRR; see SolveIRR for that. Null when equity or inflow is not positive.
func TenYearIRRApprox(equity, annualCashFlow, totalInvestment, appreciationRate decimal.Decimal) decimal.NullDecimal {
	if !equity.IsPositive() {
		return decimal.NullDecimal{}
	}
	years := decimal.NewFromInt(ProjectionYears)
	inflow := annualCashFlow.Mul(years).Add(totalInvestment.Mul(compound(appreciationRate.Div(hundred), ProjectionYears)))
	if !inflow.IsPositive() {
		return decimal.NullDecimal{}
	}
	multiple := inflow.Div(equity).InexactFloat64()
	irr := math.Pow(multiple, 1.0/ProjectionYears) - 1
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(irr * 100), Valid: true}
}

// projectInvestment builds years 0..ProjectionYears.
func projectInvestment(params domain.InvestmentParameters, res *domain.InvestmentResult) []domain.ProjectionYear {
	growth := params.AppreciationRate.Div(hundred)
	projection := make([]domain.ProjectionYear, 0, ProjectionYears+1)

	var cumulative decimal.Decimal
	for year := 0; year <= ProjectionYears; year++ {
		if year > 0 {
			cumulative = cumulative.Add(res.AnnualCashFlow)
		}
		value := res.TotalInvestment.Mul(compound(growth, year))
		remaining := outstandingLoan(params, res.Loan.AmortizationTable, year)

		projection = append(projection, domain.ProjectionYear{
			Year:               year,
			PropertyValue:      value,
			LoanRemaining:      remaining,
			CumulativeCashFlow: cumulative,
			NetWorth:           value.Sub(remaining).Add(cumulative),
		})
	}
	return projection
}

// outstandingLoan estimates the loan balance after year years.
func outstandingLoan(params domain.InvestmentParameters, table []domain.AmortizationRow, year int) decimal.Decimal {
	fin := params.Financing
	if !fin.Principal.IsPositive() || fin.TermYears <= 0 {
		return decimal.Zero
	}
	if params.ProjectionBalance == domain.BalanceSchedule {
		return BalanceAfterYears(fin, table, year)
	}
	if year >= fin.TermYears {
		return decimal.Zero
	}
	// Linear estimate with a fixed 10% markup; it overstates the balance in year 0.
	elapsed := decimal.NewFromInt(int64(year)).Div(decimal.NewFromInt(int64(fin.TermYears)))
	return fin.Principal.Mul(one.Sub(elapsed)).Mul(linearBalanceMarkup)
}

// solvedTenYearIRR discounts -equity, nine years of cash flow, and the last year's cash flow
// plus the equity left in the property.
func solvedTenYearIRR(res *domain.InvestmentResult) decimal.NullDecimal {
	if !res.InitialEquity.IsPositive() || len(res.TenYearProjection) != ProjectionYears+1 {
		return decimal.NullDecimal{}
	}
	final := res.TenYearProjection[ProjectionYears]

	flows := make([]decimal.Decimal, ProjectionYears+1)
	flows[0] = res.InitialEquity.Neg()
	for t := 1; t <= ProjectionYears; t++ {
		flows[t] = res.AnnualCashFlow
	}
	flows[ProjectionYears] = flows[ProjectionYears].Add(final.PropertyValue.Sub(final.LoanRemaining))

	rate, ok := SolveIRR(flows)
	if !ok {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: rate.Mul(hundred), Valid: true}
}
