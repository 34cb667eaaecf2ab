package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEstimateNotaryFees(t *testing.T) {
	assertDecimalEqual(t, "15000", EstimateNotaryFees(d("200000")))
	assertDecimalEqual(t, "18750", EstimateNotaryFees(d("250000")))
	assertDecimalEqual(t, "0", EstimateNotaryFees(decimal.Zero))
	assertDecimalEqual(t, "0", EstimateNotaryFees(d("-5")))
}

func TestShouldReplaceNotaryEstimate(t *testing.T) {
	tests := []struct {
		name    string
		current string
		price   string
		want    bool
	}{
		{"unset fees", "0", "200000", true},
		{"matches estimate", "15000", "200000", false},
		{"small price change keeps manual value", "15000", "210000", false},
		{"manual override within 2%", "12000", "200000", false},
		{"large price change", "15000", "300000", true},
		{"zero price", "0", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldReplaceNotaryEstimate(d(tt.current), d(tt.price)))
		})
	}
}
