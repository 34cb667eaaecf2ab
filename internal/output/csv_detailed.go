package output

import (
	"bytes"
	"encoding/csv"

	"github.com/immocalc/realty-calculator/internal/domain"
)

// CSVDetailedExporter provides the per-period amortization table and the yearly investment projection.
// Columns that do not apply to a row are left empty.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Section", "Period", "Date", "Payment", "Principal", "Interest", "Insurance", "Balance",
		"CumulativeInterest", "PropertyValue", "CumulativeCashFlow", "NetWorth"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	var table []domain.AmortizationRow
	section := "amortization"
	switch {
	case report.Loan != nil:
		table = report.Loan.Result.AmortizationTable
	case report.Investment != nil:
		table = report.Investment.Result.Loan.AmortizationTable
		section = "financing"
	}
	for _, row := range table {
		record := []string{
			section,
			intToString(row.Period),
			row.Date.Format("2006-01-02"),
			row.TotalPayment.StringFixed(2),
			row.PrincipalPortion.StringFixed(2),
			row.InterestPortion.StringFixed(2),
			row.InsurancePortion.StringFixed(2),
			row.RemainingBalance.StringFixed(2),
			row.CumulativeInterest.StringFixed(2),
			"", "", "",
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	if inv := report.Investment; inv != nil {
		for _, y := range inv.Result.TenYearProjection {
			record := []string{
				"projection",
				intToString(y.Year),
				"", "", "", "", "",
				y.LoanRemaining.StringFixed(2),
				"",
				y.PropertyValue.StringFixed(2),
				y.CumulativeCashFlow.StringFixed(2),
				y.NetWorth.StringFixed(2),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
