package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrInsufficientData indicates the sample is too small for the
	// requested statistic (e.g. sample variance needs n >= 2).
	ErrInsufficientData = errors.New("insufficient data for statistic")

	// ErrDistribution indicates an invalid distribution parameter such as
	// a confidence level, alpha, or power outside (0, 1).
	ErrDistribution = errors.New("invalid distribution parameter")

	// ErrDimensionMismatch indicates paired sequences of unequal length.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrDivisionByZero indicates a zero divisor, such as a zero expected
	// count in a chi-square test.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrDegenerateCovariate indicates a zero-variance covariate in a
	// CUPED/CUPAC adjustment.
	ErrDegenerateCovariate = errors.New("degenerate covariate")
)

// Error constructors with context

func NewInsufficientDataError(statistic string, need, got int) error {
	return fmt.Errorf("%w: %s requires n >= %d, got %d", ErrInsufficientData, statistic, need, got)
}

func NewDistributionError(param string, value float64) error {
	return fmt.Errorf("%w: %s must be in (0, 1), got %g", ErrDistribution, param, value)
}

func NewDimensionMismatchError(operation string, lenA, lenB int) error {
	return fmt.Errorf("%w: %s requires equal lengths, got %d and %d", ErrDimensionMismatch, operation, lenA, lenB)
}

func NewDivisionByZeroError(operation, divisor string) error {
	return fmt.Errorf("%w: %s has zero %s", ErrDivisionByZero, operation, divisor)
}

func NewDegenerateCovariateError(operation string) error {
	return fmt.Errorf("%w: %s covariate has zero variance", ErrDegenerateCovariate, operation)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers

func IsInsufficientDataError(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsDistributionError(err error) bool {
	return errors.Is(err, ErrDistribution)
}

// IsContractViolation reports whether err is any of the programming-contract
// violations. These are raised immediately at the point of violation and are
// never retried or recovered.
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrDistribution) ||
		errors.Is(err, ErrDimensionMismatch) ||
		errors.Is(err, ErrDivisionByZero) ||
		errors.Is(err, ErrDegenerateCovariate)
}
