package output

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestIntToString(t *testing.T) {
	if got, want := intToString(42), "42"; got != want {
		t.Errorf("intToString(42) = %q, want %q", got, want)
	}
}

func TestBoolToString(t *testing.T) {
	if got, want := boolToString(true), "true"; got != want {
		t.Errorf("boolToString(true) = %q, want %q", got, want)
	}
	if got, want := boolToString(false), "false"; got != want {
		t.Errorf("boolToString(false) = %q, want %q", got, want)
	}
}

func TestNullToString(t *testing.T) {
	if got := nullToString(decimal.NullDecimal{}); got != "" {
		t.Errorf("nullToString(null) = %q, want empty", got)
	}
	if got, want := nullToString(decimal.NullDecimal{Decimal: decimal.NewFromFloat(2.666), Valid: true}), "2.67"; got != want {
		t.Errorf("nullToString = %q, want %q", got, want)
	}
}
