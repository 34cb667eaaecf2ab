package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/immocalc/realty-calculator/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with interactive charts.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

// echartsAsset is the script the charts are drawn with.
const echartsAsset = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":     FormatCurrency,
	"pct":      FormatPercentage,
	"nullpct":  FormatNullPercentage,
	"nullcurr": FormatNullCurrency,
	"years":    FormatYears,
	"date":     func(d interface{ Format(string) string }) string { return d.Format("2006-01-02") },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	chartList, err := buildCharts(report)
	if err != nil {
		return nil, err
	}

	data := struct {
		*domain.Report
		Recommendation Recommendation
		Assumptions    []string
		Charts         []Chart
		EchartsAsset   string
	}{report, Analyze(report), assumptionsFor(report), chartList, echartsAsset}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
