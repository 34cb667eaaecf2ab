// Package snapshot is the persistence boundary: it turns calculation inputs and results into
// self-contained JSON blobs and restores them by recomputing every derived figure.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/immocalc/realty-calculator/internal/calculation"
	"github.com/immocalc/realty-calculator/internal/domain"
)

// FormatVersion is bumped whenever the blob layout changes incompatibly.
const FormatVersion = 1

// Kind tells which calculation a snapshot holds.
type Kind string

const (
	KindLoan       Kind = "loan"
	KindComparison Kind = "comparison"
	KindInvestment Kind = "investment"
)

var (
	// ErrNotFound is returned by stores when no snapshot has the requested id.
	ErrNotFound = errors.New("snapshot not found")
	// ErrInvalidSnapshot is returned for blobs that cannot be restored.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// Snapshot is the serializable form of one calculation. Exactly one of the state fields is set,
// matching Kind. Results are stored for display only; Restore recomputes them.
type Snapshot struct {
	ID        string    `json:"id"`
	Version   int       `json:"version"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`

	Loan       *LoanState       `json:"loan,omitempty"`
	Comparison *ComparisonState `json:"comparison,omitempty"`
	Investment *InvestmentState `json:"investment,omitempty"`
}

// LoanState is {terms, income, results} of a loan simulation.
type LoanState struct {
	Terms    domain.LoanTerms  `json:"terms"`
	Borrower *domain.Borrower  `json:"borrower,omitempty"`
	Result   domain.LoanResult `json:"result"`
}

// ComparisonState keeps the submitted offers; Suggest marks a baseline-plus-alternatives run.
type ComparisonState struct {
	Offers  []domain.ComparisonInput `json:"offers"`
	Suggest bool                     `json:"suggest,omitempty"`
	Result  domain.LoanComparison    `json:"result"`
}

// InvestmentState is {investmentParams, results} of a rental simulation.
type InvestmentState struct {
	Parameters domain.InvestmentParameters `json:"parameters"`
	Result     domain.InvestmentResult     `json:"result"`
}

// Summary is what List returns for each stored snapshot.
type Summary struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

func newSnapshot(kind Kind) *Snapshot {
	return &Snapshot{
		ID:        uuid.NewString(),
		Version:   FormatVersion,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}
}

// FromReport captures the inputs and results of a report. suggest records whether a comparison
// was generated from a single baseline.
func FromReport(report *domain.Report, borrower *domain.Borrower, suggest bool) (*Snapshot, error) {
	switch {
	case report == nil:
		return nil, fmt.Errorf("%w: no report", ErrInvalidSnapshot)
	case report.Loan != nil:
		s := newSnapshot(KindLoan)
		s.Loan = &LoanState{
			Terms:    report.Loan.Terms,
			Borrower: borrower,
			Result:   report.Loan.Result.Summary().Rounded(),
		}
		return s, nil
	case report.Comparison != nil:
		s := newSnapshot(KindComparison)
		state := &ComparisonState{Suggest: suggest, Result: *report.Comparison}
		for _, e := range report.Comparison.Entries {
			state.Offers = append(state.Offers, domain.ComparisonInput{Label: e.Label, Terms: e.Terms})
		}
		if suggest && len(state.Offers) > 0 {
			state.Offers = state.Offers[:1]
		}
		s.Comparison = state
		return s, nil
	case report.Investment != nil:
		s := newSnapshot(KindInvestment)
		result := report.Investment.Result.Rounded()
		result.Loan = result.Loan.Summary()
		s.Investment = &InvestmentState{Parameters: report.Investment.Parameters, Result: result}
		return s, nil
	}
	return nil, fmt.Errorf("%w: report has no section to snapshot", ErrInvalidSnapshot)
}

// Summary returns the listing view of the snapshot.
func (s *Snapshot) Summary() Summary {
	return Summary{ID: s.ID, Kind: s.Kind, CreatedAt: s.CreatedAt}
}

// Validate checks that the blob is restorable.
func (s *Snapshot) Validate() error {
	if _, err := uuid.Parse(s.ID); err != nil {
		return fmt.Errorf("%w: bad id %q", ErrInvalidSnapshot, s.ID)
	}
	if s.Version != FormatVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, s.Version)
	}
	var ok bool
	switch s.Kind {
	case KindLoan:
		ok = s.Loan != nil
	case KindComparison:
		ok = s.Comparison != nil && len(s.Comparison.Offers) > 0
	case KindInvestment:
		ok = s.Investment != nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidSnapshot, s.Kind)
	}
	if !ok {
		return fmt.Errorf("%w: %s snapshot has no %s state", ErrInvalidSnapshot, s.Kind, s.Kind)
	}
	return nil
}

// Encode serializes the snapshot.
func Encode(s *Snapshot) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// Decode parses and validates a blob.
func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Restore recomputes the report from the stored inputs. Stored results are never reused.
func Restore(ctx context.Context, engine *calculation.CalculationEngine, s *Snapshot) (*domain.Report, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	switch s.Kind {
	case KindLoan:
		return engine.RunLoan(s.Loan.Terms, s.Loan.Borrower)
	case KindComparison:
		if s.Comparison.Suggest {
			return engine.RunAlternatives(ctx, s.Comparison.Offers[0])
		}
		return engine.RunComparison(ctx, s.Comparison.Offers)
	default:
		return engine.RunInvestment(s.Investment.Parameters)
	}
}

// Drift lists the headline figures whose stored value no longer matches the restored report,
// for example after a change in the calculation rules.
func Drift(s *Snapshot, restored *domain.Report) []string {
	var out []string
	check := func(name string, stored, fresh interface{ StringFixed(int32) string }) {
		if stored.StringFixed(2) != fresh.StringFixed(2) {
			out = append(out, fmt.Sprintf("%s: stored %s, recomputed %s", name, stored.StringFixed(2), fresh.StringFixed(2)))
		}
	}
	switch {
	case s.Loan != nil && restored.Loan != nil:
		check("total_cost", s.Loan.Result.TotalCost, restored.Loan.Result.TotalCost)
		check("monthly_payment_equivalent", s.Loan.Result.MonthlyPaymentEquivalent, restored.Loan.Result.MonthlyPaymentEquivalent)
	case s.Comparison != nil && restored.Comparison != nil:
		fresh := map[string]domain.ComparisonEntry{}
		for _, e := range restored.Comparison.Entries {
			fresh[e.Label] = e
		}
		for _, e := range s.Comparison.Result.Entries {
			f, ok := fresh[e.Label]
			if !ok {
				out = append(out, fmt.Sprintf("%s: no longer present", e.Label))
				continue
			}
			if e.Result != nil && f.Result != nil {
				check(e.Label+" total_cost", e.Result.TotalCost, f.Result.TotalCost)
			}
		}
	case s.Investment != nil && restored.Investment != nil:
		check("monthly_cash_flow", s.Investment.Result.MonthlyCashFlow, restored.Investment.Result.MonthlyCashFlow)
		check("total_investment", s.Investment.Result.TotalInvestment, restored.Investment.Result.TotalInvestment)
	}
	return out
}
