package calculation

import (
	"context"
	"testing"

	"github.com/immocalc/realty-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offer(label, rate string, years int) domain.ComparisonInput {
	terms := scenarioATerms()
	terms.AnnualRate = d(rate)
	terms.TermYears = years
	return domain.ComparisonInput{Label: label, Terms: terms}
}

func TestCompareLoans_SizeViolation(t *testing.T) {
	for _, n := range []int{0, 1, 6} {
		inputs := make([]domain.ComparisonInput, n)
		for i := range inputs {
			inputs[i] = offer("", "3.5", 20)
		}
		res, err := CompareLoans(context.Background(), inputs)
		assert.ErrorIs(t, err, domain.ErrComparisonSizeViolation, "size %d", n)
		assert.Nil(t, res)
	}
}

func TestCompareLoans_Ranking(t *testing.T) {
	inputs := []domain.ComparisonInput{
		offer("Bank A", "3.85", 25),
		offer("Bank B", "3.40", 25),
		offer("Bank C", "4.20", 25),
		offer("Bank D", "3.60", 20),
	}

	res, err := CompareLoans(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, res.Entries, 4)
	assert.Empty(t, res.Failed())

	for _, e := range res.Entries {
		require.True(t, e.OK(), e.Label)
		assert.Nil(t, e.Result.AmortizationTable, "comparison results carry aggregates only")
	}

	// The best total cost is never above any other entry's
	for _, best := range res.Entries {
		if best.Ranks.TotalCost != domain.RankBest {
			continue
		}
		for _, other := range res.Entries {
			assert.False(t, best.Result.TotalCost.GreaterThan(other.Result.TotalCost.Add(RankEpsilon)))
		}
	}

	// The 20-year offer pays less interest and insurance in total despite its higher installment
	assert.Equal(t, domain.RankBest, res.Entries[3].Ranks.TotalCost)
	assert.Equal(t, domain.RankWorst, res.Entries[2].Ranks.TotalCost)
	assert.Equal(t, domain.RankNeutral, res.Entries[0].Ranks.TotalCost)
	assert.Equal(t, domain.RankNeutral, res.Entries[1].Ranks.TotalCost)
	assert.Equal(t, domain.RankWorst, res.Entries[3].Ranks.MonthlyPayment)
	assert.Equal(t, domain.RankBest, res.Entries[1].Ranks.MonthlyPayment)
	assert.Equal(t, domain.RankBest, res.Entries[1].Ranks.EffectiveRateApprox)
	assert.Equal(t, domain.RankWorst, res.Entries[2].Ranks.EffectiveRateApprox)

	assert.Equal(t, "Bank D", res.BestOverall)
	assert.True(t, res.Entries[0].IsBaseline)
	assert.False(t, res.Entries[0].Savings.Valid)
	require.True(t, res.Entries[1].Savings.Valid)
	assert.True(t, res.Entries[1].Savings.Decimal.IsPositive())
	require.True(t, res.Entries[2].Savings.Valid)
	assert.True(t, res.Entries[2].Savings.Decimal.IsNegative())
	assert.True(t, res.MaxSavings.Equal(res.Entries[3].Savings.Decimal))
}

func TestCompareLoans_TiesAreBestOnBothEnds(t *testing.T) {
	inputs := []domain.ComparisonInput{offer("", "3.5", 20), offer("", "3.5", 20)}

	res, err := CompareLoans(context.Background(), inputs)
	require.NoError(t, err)

	for _, e := range res.Entries {
		assert.Equal(t, domain.RankBest, e.Ranks.MonthlyPayment)
		assert.Equal(t, domain.RankBest, e.Ranks.TotalCost)
		assert.Equal(t, domain.RankBest, e.Ranks.EffectiveRateApprox)
	}
	assert.Equal(t, "Offer 1", res.Entries[0].Label)
	assert.Equal(t, "Offer 2", res.Entries[1].Label)
	assertDecimalEqual(t, "0", res.Entries[1].Savings.Decimal)
	assert.Nil(t, res.Entries[1].BreakEven)
}

func TestCompareLoans_FailureIsPerEntry(t *testing.T) {
	bad := offer("Broken", "3.5", 20)
	bad.Terms.Principal = decimal.Zero

	inputs := []domain.ComparisonInput{offer("Base", "3.85", 25), bad, offer("Cheap", "3.2", 25)}

	res, err := CompareLoans(context.Background(), inputs)
	require.NoError(t, err)

	failed := res.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "Broken", failed[0].Label)
	assert.ErrorIs(t, failed[0].Err, domain.ErrInvalidLoanTerms)
	assert.Contains(t, failed[0].Error, "Broken")
	assert.Nil(t, failed[0].Result)
	assert.False(t, failed[0].Savings.Valid)
	assert.Equal(t, domain.RankTag(""), failed[0].Ranks.TotalCost)

	assert.Equal(t, domain.RankWorst, res.Entries[0].Ranks.TotalCost)
	assert.Equal(t, domain.RankBest, res.Entries[2].Ranks.TotalCost)
	assert.Equal(t, "Cheap", res.BestOverall)
}

func TestCompareLoans_FailedBaseline(t *testing.T) {
	bad := offer("Base", "3.5", 20)
	bad.Terms.TermYears = 0

	res, err := CompareLoans(context.Background(), []domain.ComparisonInput{bad, offer("Other", "3.5", 20)})
	require.NoError(t, err)

	assert.False(t, res.Entries[0].OK())
	assert.True(t, res.Entries[1].OK())
	assert.False(t, res.Entries[1].Savings.Valid)
	assert.Equal(t, domain.RankBest, res.Entries[1].Ranks.TotalCost)
}

func TestCompareLoans_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := CompareLoans(ctx, []domain.ComparisonInput{offer("", "3.5", 20), offer("", "3.6", 20)})
	require.NoError(t, err)
	for _, e := range res.Entries {
		assert.ErrorIs(t, e.Err, context.Canceled)
	}
	assert.Empty(t, res.BestOverall)
}

func TestCompareLoans_BreakEvenAgainstBaseline(t *testing.T) {
	base := offer("No fees", "4.0", 20)
	withFees := offer("Lower rate, fees", "3.5", 20)
	withFees.Terms.BrokerFees = d("3000")
	withFees.Terms.FileFees = d("1000")

	res, err := CompareLoans(context.Background(), []domain.ComparisonInput{base, withFees})
	require.NoError(t, err)

	be := res.Entries[1].BreakEven
	require.NotNil(t, be)
	assert.Greater(t, be.Month, 1)
	assert.Less(t, be.Month, 240)
}

func TestRankValue(t *testing.T) {
	lo, hi := d("100"), d("200")
	assert.Equal(t, domain.RankBest, RankValue(d("100"), lo, hi))
	assert.Equal(t, domain.RankBest, RankValue(d("100.01"), lo, hi))
	assert.Equal(t, domain.RankNeutral, RankValue(d("150"), lo, hi))
	assert.Equal(t, domain.RankWorst, RankValue(d("199.995"), lo, hi))
	assert.Equal(t, domain.RankBest, RankValue(d("5"), d("5"), d("5.001")))
}

func TestSuggestAlternatives(t *testing.T) {
	baseline := offer("", "3.85", 25)
	baseline.Terms.InsuranceRate = d("0.36")

	alts := SuggestAlternatives(baseline)
	require.Len(t, alts, 4)
	assert.Equal(t, "Baseline", alts[0].Label)
	assertDecimalEqual(t, "3.35", alts[1].Terms.AnnualRate)
	assert.Equal(t, "Rate 3.35%", alts[1].Label)
	assert.Equal(t, 20, alts[2].Terms.TermYears)
	assert.Equal(t, "20 years", alts[2].Label)
	assertDecimalEqual(t, "0.21", alts[3].Terms.InsuranceRate)

	// Floors
	low := offer("Low", "0.7", 12)
	low.Terms.InsuranceRate = d("0.2")
	alts = SuggestAlternatives(low)
	assertDecimalEqual(t, "0.5", alts[1].Terms.AnnualRate)
	assert.Equal(t, 10, alts[2].Terms.TermYears)
	assertDecimalEqual(t, "0.1", alts[3].Terms.InsuranceRate)
}

func TestCompareWithAlternatives(t *testing.T) {
	res, err := CompareWithAlternatives(context.Background(), offer("Mine", "3.85", 25))
	require.NoError(t, err)
	require.Len(t, res.Entries, 4)
	assert.Equal(t, "Mine", res.Entries[0].Label)
	// Every variant is cheaper than the baseline
	for _, e := range res.Entries[1:] {
		require.True(t, e.Savings.Valid)
		assert.True(t, e.Savings.Decimal.IsPositive(), e.Label)
	}
	assert.Equal(t, domain.RankWorst, res.Entries[0].Ranks.TotalCost)
}
