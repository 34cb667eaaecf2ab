package calculation

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/immocalc/realty-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

//go:embed data/mortgage_rates.csv
var defaultRatesCSV []byte

// RateHistory is the read-only series of average mortgage rates shown next to the calculators.
// It is display data only; no calculation reads it.
type RateHistory struct {
	Name       string             `json:"name"`
	Source     string             `json:"source"`
	Points     []domain.RatePoint `json:"points"`
	Statistics RateStatistics     `json:"statistics"`
}

// RateStatistics provides a statistical summary of the series
type RateStatistics struct {
	Mean         decimal.Decimal `json:"mean"`
	Min          decimal.Decimal `json:"min"`
	Max          decimal.Decimal `json:"max"`
	Count        int             `json:"count"`
	MissingYears []int           `json:"missing_years"`
}

// DefaultRateHistory returns the bundled 20-year average rate series.
func DefaultRateHistory() (*RateHistory, error) {
	return parseRateHistory(bytes.NewReader(defaultRatesCSV), "bundled", "Average fixed mortgage rates, 20-25 years")
}

// LoadRateHistory reads a year,rate CSV file with a header row.
func LoadRateHistory(path string) (*RateHistory, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	return parseRateHistory(file, path, "Average mortgage rates")
}

func parseRateHistory(r io.Reader, source, name string) (*RateHistory, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid CSV format: expected at least 2 columns")
	}

	var points []domain.RatePoint
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		if len(record) < 2 {
			continue // Skip malformed rows
		}

		year, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			continue // Skip rows with invalid year
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			continue // Skip rows with invalid value
		}

		if n := len(points); n > 0 && year <= points[n-1].Year {
			return nil, fmt.Errorf("rate series must be sorted by ascending year: %d follows %d", year, points[n-1].Year)
		}
		points = append(points, domain.RatePoint{Year: year, Rate: rate})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("no valid data points found in %s", source)
	}

	return &RateHistory{
		Name:       name,
		Source:     source,
		Points:     points,
		Statistics: calculateRateStatistics(points),
	}, nil
}

func calculateRateStatistics(points []domain.RatePoint) RateStatistics {
	if len(points) == 0 {
		return RateStatistics{}
	}

	var sum decimal.Decimal
	lo, hi := points[0].Rate, points[0].Rate
	for _, p := range points {
		sum = sum.Add(p.Rate)
		lo = decimal.Min(lo, p.Rate)
		hi = decimal.Max(hi, p.Rate)
	}

	// Points are sorted, so gaps are any missing year between neighbours
	var missing []int
	for i := 1; i < len(points); i++ {
		for y := points[i-1].Year + 1; y < points[i].Year; y++ {
			missing = append(missing, y)
		}
	}

	return RateStatistics{
		Mean:         sum.Div(decimal.NewFromInt(int64(len(points)))),
		Min:          lo,
		Max:          hi,
		Count:        len(points),
		MissingYears: missing,
	}
}

// ForYear returns the rate recorded for a calendar year.
func (rh *RateHistory) ForYear(year int) (decimal.Decimal, error) {
	for _, p := range rh.Points {
		if p.Year == year {
			return p.Rate, nil
		}
	}
	return decimal.Zero, fmt.Errorf("no rate data found for year %d", year)
}

// Latest returns the most recent point of the series.
func (rh *RateHistory) Latest() domain.RatePoint {
	if len(rh.Points) == 0 {
		return domain.RatePoint{}
	}
	return rh.Points[len(rh.Points)-1]
}

// Since returns the points from the given year onwards.
func (rh *RateHistory) Since(year int) []domain.RatePoint {
	for i, p := range rh.Points {
		if p.Year >= year {
			return append([]domain.RatePoint(nil), rh.Points[i:]...)
		}
	}
	return nil
}
