package output

import (
	"encoding/json"
	"html/template"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/immocalc/realty-calculator/internal/domain"
)

// Chart is one chart ready to be initialised by the report template.
type Chart struct {
	ID     string
	Option template.JS
}

const (
	chartWidth  = "900px"
	chartHeight = "420px"
)

type echartsChart interface {
	Validate()
	JSON() map[string]interface{}
}

func newChart(id string, c echartsChart) (Chart, error) {
	c.Validate()
	b, err := json.Marshal(c.JSON())
	if err != nil {
		return Chart{}, err
	}
	return Chart{ID: id, Option: template.JS(b)}, nil
}

func initOpts(id string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{ChartID: id, Width: chartWidth, Height: chartHeight})
}

// buildCharts returns every chart the report has data for, in display order.
func buildCharts(report *domain.Report) ([]Chart, error) {
	var out []Chart
	add := func(id string, c echartsChart) error {
		ch, err := newChart(id, c)
		if err != nil {
			return err
		}
		out = append(out, ch)
		return nil
	}

	if report.Loan != nil && len(report.Loan.Result.AmortizationTable) > 0 {
		if err := add("amortization", amortizationChart(report.Loan.Terms, report.Loan.Result.AmortizationTable)); err != nil {
			return nil, err
		}
	}
	if report.Comparison != nil {
		if err := add("comparison", comparisonChart(report.Comparison)); err != nil {
			return nil, err
		}
	}
	if report.Investment != nil && len(report.Investment.Result.TenYearProjection) > 0 {
		if err := add("projection", projectionChart(report.Investment.Result.TenYearProjection)); err != nil {
			return nil, err
		}
	}
	if len(report.RateHistory) > 0 {
		if err := add("rates", rateChart(report.RateHistory)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// amortizationChart stacks principal and interest paid per loan year.
func amortizationChart(terms domain.LoanTerms, table []domain.AmortizationRow) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts("amortization"),
		charts.WithTitleOpts(opts.Title{Title: "Repayment by year"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)

	ppy := terms.PaymentFrequency.PaymentsPerYear()
	var years []string
	var principal, interest []opts.BarData
	var prev domain.AmortizationRow
	for i := ppy - 1; i < len(table); i += ppy {
		row := table[i]
		years = append(years, strconv.Itoa(row.Date.Year()))
		principal = append(principal, opts.BarData{Value: row.CumulativePrincipal.Sub(prev.CumulativePrincipal).Round(2).InexactFloat64()})
		interest = append(interest, opts.BarData{Value: row.CumulativeInterest.Sub(prev.CumulativeInterest).Round(2).InexactFloat64()})
		prev = row
	}
	bar.SetXAxis(years).
		AddSeries("Principal", principal, charts.WithBarChartOpts(opts.BarChart{Stack: "paid"})).
		AddSeries("Interest", interest, charts.WithBarChartOpts(opts.BarChart{Stack: "paid"}))
	return bar
}

// comparisonChart shows the total cost of each evaluated offer.
func comparisonChart(c *domain.LoanComparison) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts("comparison"),
		charts.WithTitleOpts(opts.Title{Title: "Total cost of credit"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	var labels []string
	var cost, interest []opts.BarData
	for _, e := range c.Entries {
		if !e.OK() {
			continue
		}
		labels = append(labels, e.Label)
		cost = append(cost, opts.BarData{Value: e.Result.TotalCost.Round(2).InexactFloat64()})
		interest = append(interest, opts.BarData{Value: e.Result.TotalInterest.Round(2).InexactFloat64()})
	}
	bar.SetXAxis(labels).
		AddSeries("Total cost", cost).
		AddSeries("Interest", interest)
	return bar
}

// projectionChart plots property value, outstanding loan and net worth over ten years.
func projectionChart(years []domain.ProjectionYear) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts("projection"),
		charts.WithTitleOpts(opts.Title{Title: "Ten-year projection"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	var x []string
	var value, loan, worth []opts.LineData
	for _, y := range years {
		x = append(x, "Y"+strconv.Itoa(y.Year))
		value = append(value, opts.LineData{Value: y.PropertyValue.Round(2).InexactFloat64()})
		loan = append(loan, opts.LineData{Value: y.LoanRemaining.Round(2).InexactFloat64()})
		worth = append(worth, opts.LineData{Value: y.NetWorth.Round(2).InexactFloat64()})
	}
	line.SetXAxis(x).
		AddSeries("Property value", value).
		AddSeries("Loan remaining", loan).
		AddSeries("Net worth", worth)
	return line
}

// rateChart plots the yearly average mortgage rate.
func rateChart(points []domain.RatePoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts("rates"),
		charts.WithTitleOpts(opts.Title{Title: "Average mortgage rate (%)"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	var x []string
	var rates []opts.LineData
	for _, p := range points {
		x = append(x, strconv.Itoa(p.Year))
		rates = append(rates, opts.LineData{Value: p.Rate.InexactFloat64()})
	}
	line.SetXAxis(x).AddSeries("Rate", rates)
	return line
}
