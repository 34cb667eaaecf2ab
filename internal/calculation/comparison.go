package calculation

import (
	"context"
	"fmt"

	"github.com/immocalc/realty-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// RankEpsilon is the tolerance (currency or percentage points) under which two values tie.
var RankEpsilon = decimal.NewFromFloat(0.01)

// CompareLoans evaluates 2 to 5 offers independently and tags each one best, worst or neutral on
// monthly payment, total cost and effective rate. The first input is the baseline for savings.
//
// A size violation fails the whole call before anything is evaluated. An offer with invalid terms
// only marks its own entry as failed; the other entries are still evaluated and ranked.
func CompareLoans(ctx context.Context, inputs []domain.ComparisonInput) (*domain.LoanComparison, error) {
	if len(inputs) < domain.MinComparisonEntries {
		return nil, fmt.Errorf("%w: at least %d offers are needed for a comparison, got %d",
			domain.ErrComparisonSizeViolation, domain.MinComparisonEntries, len(inputs))
	}
	if len(inputs) > domain.MaxComparisonEntries {
		return nil, fmt.Errorf("%w: at most %d offers can be compared, got %d",
			domain.ErrComparisonSizeViolation, domain.MaxComparisonEntries, len(inputs))
	}

	entries := make([]domain.ComparisonEntry, len(inputs))
	tables := make([][]domain.AmortizationRow, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(domain.MaxComparisonEntries)
	for i, in := range inputs {
		g.Go(func() error {
			entry := domain.ComparisonEntry{
				Label:      in.Label,
				Terms:      in.Terms,
				IsBaseline: i == 0,
			}
			if entry.Label == "" {
				entry.Label = fmt.Sprintf("Offer %d", i+1)
			}
			if err := gctx.Err(); err != nil {
				entry.Err = err
				entry.Error = err.Error()
				entries[i] = entry
				return nil
			}
			res, err := EvaluateLoan(in.Terms, nil)
			if err != nil {
				entry.Err = fmt.Errorf("%s: %w", entry.Label, err)
				entry.Error = entry.Err.Error()
			} else {
				summary := res.Summary()
				entry.Result = &summary
				tables[i] = res.AmortizationTable
			}
			entries[i] = entry
			return nil // per-entry failure, never fatal
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rankEntries(entries)
	applySavings(entries)
	applyBreakEven(entries, tables)

	comparison := &domain.LoanComparison{Entries: entries}
	summarizeComparison(comparison)
	return comparison, nil
}

// rankEntries tags the successful entries on every ranked metric.
func rankEntries(entries []domain.ComparisonEntry) {
	metrics := []struct {
		value func(*domain.LoanResult) decimal.Decimal
		set   func(*domain.RankTags, domain.RankTag)
	}{
		{
			value: func(r *domain.LoanResult) decimal.Decimal { return r.MonthlyPaymentEquivalent },
			set:   func(t *domain.RankTags, tag domain.RankTag) { t.MonthlyPayment = tag },
		},
		{
			value: func(r *domain.LoanResult) decimal.Decimal { return r.TotalCost },
			set:   func(t *domain.RankTags, tag domain.RankTag) { t.TotalCost = tag },
		},
		{
			value: func(r *domain.LoanResult) decimal.Decimal { return r.EffectiveRateApprox },
			set:   func(t *domain.RankTags, tag domain.RankTag) { t.EffectiveRateApprox = tag },
		},
	}

	for _, m := range metrics {
		values := make([]decimal.Decimal, 0, len(entries))
		for _, e := range entries {
			if e.OK() {
				values = append(values, m.value(e.Result))
			}
		}
		if len(values) == 0 {
			continue
		}
		lo, hi := decimal.Min(values[0], values[1:]...), decimal.Max(values[0], values[1:]...)
		for i := range entries {
			if !entries[i].OK() {
				continue
			}
			m.set(&entries[i].Ranks, RankValue(m.value(entries[i].Result), lo, hi))
		}
	}
}

// RankValue tags v against the observed range. Values within RankEpsilon of the minimum are best,
// within RankEpsilon of the maximum are worst; when the whole range is a tie everything is best.
func RankValue(v, lo, hi decimal.Decimal) domain.RankTag {
	switch {
	case v.Sub(lo).Abs().LessThanOrEqual(RankEpsilon):
		return domain.RankBest
	case hi.Sub(v).Abs().LessThanOrEqual(RankEpsilon):
		return domain.RankWorst
	default:
		return domain.RankNeutral
	}
}

// applySavings fills baseline-relative savings: positive means cheaper than the baseline.
func applySavings(entries []domain.ComparisonEntry) {
	if len(entries) == 0 {
		return
	}
	baseline := entries[0]
	for i := 1; i < len(entries); i++ {
		if !baseline.OK() || !entries[i].OK() {
			continue
		}
		entries[i].Savings = decimal.NullDecimal{
			Decimal: baseline.Result.TotalCost.Sub(entries[i].Result.TotalCost),
			Valid:   true,
		}
	}
}

// applyBreakEven locates, for each entry, the month its cumulative cost crosses the baseline's.
func applyBreakEven(entries []domain.ComparisonEntry, tables [][]domain.AmortizationRow) {
	if len(entries) == 0 || !entries[0].OK() {
		return
	}
	for i := 1; i < len(entries); i++ {
		if !entries[i].OK() {
			continue
		}
		be, err := CalculateCostBreakEven(entries[0].Terms, tables[0], entries[i].Terms, tables[i])
		if err == nil {
			entries[i].BreakEven = be
		}
	}
}

// Alternative deltas applied by SuggestAlternatives, with their floors.
var (
	AlternativeRateCut      = decimal.NewFromFloat(0.5)
	AlternativeRateFloor    = decimal.NewFromFloat(0.5)
	AlternativeTermCutYears = 5
	AlternativeTermFloor    = 10
	AlternativeInsuranceCut = decimal.NewFromFloat(0.15)
	AlternativeInsFloor     = decimal.NewFromFloat(0.1)
)

// SuggestAlternatives returns the baseline followed by three variants: a lower rate,
// a shorter term and a cheaper insurance.
func SuggestAlternatives(baseline domain.ComparisonInput) []domain.ComparisonInput {
	if baseline.Label == "" {
		baseline.Label = "Baseline"
	}

	lowerRate := baseline.Terms
	lowerRate.AnnualRate = maxDecimal(baseline.Terms.AnnualRate.Sub(AlternativeRateCut), AlternativeRateFloor)

	shorterTerm := baseline.Terms
	shorterTerm.TermYears = max(baseline.Terms.TermYears-AlternativeTermCutYears, AlternativeTermFloor)

	cheaperInsurance := baseline.Terms
	cheaperInsurance.InsuranceRate = maxDecimal(baseline.Terms.InsuranceRate.Sub(AlternativeInsuranceCut), AlternativeInsFloor)

	return []domain.ComparisonInput{
		baseline,
		{Label: fmt.Sprintf("Rate %s%%", lowerRate.AnnualRate.StringFixed(2)), Terms: lowerRate},
		{Label: fmt.Sprintf("%d years", shorterTerm.TermYears), Terms: shorterTerm},
		{Label: fmt.Sprintf("Insurance %s%%", cheaperInsurance.InsuranceRate.StringFixed(2)), Terms: cheaperInsurance},
	}
}

// CompareWithAlternatives compares a baseline offer against its suggested variants.
func CompareWithAlternatives(ctx context.Context, baseline domain.ComparisonInput) (*domain.LoanComparison, error) {
	return CompareLoans(ctx, SuggestAlternatives(baseline))
}
