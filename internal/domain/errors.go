package domain

import "errors"

var (
	// ErrInvalidLoanTerms is returned when a loan has a non-positive principal or term, or a negative rate.
	ErrInvalidLoanTerms = errors.New("invalid loan terms")

	// ErrComparisonSizeViolation is returned when a comparison holds fewer than
	// MinComparisonEntries or more than MaxComparisonEntries offers.
	ErrComparisonSizeViolation = errors.New("comparison size violation")

	// ErrInvalidInvestment is returned for negative acquisition costs or out-of-range rental haircuts.
	ErrInvalidInvestment = errors.New("invalid investment parameters")
)

const (
	// MinComparisonEntries is the smallest number of offers that still makes a comparison.
	MinComparisonEntries = 2
	// MaxComparisonEntries is the largest number of simultaneous offers.
	MaxComparisonEntries = 5
)
