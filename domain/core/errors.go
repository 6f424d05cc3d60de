package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Parameter errors
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrDrawSize         = fmt.Errorf("%w: draw size", ErrInvalidParameter)
	ErrDuplicateElement = fmt.Errorf("%w: duplicate population element", ErrInvalidParameter)
	ErrTrialCount       = fmt.Errorf("%w: trial count", ErrInvalidParameter)
	ErrUnknownMode      = fmt.Errorf("%w: unknown combinatorial mode", ErrInvalidParameter)
	ErrSpaceTooLarge    = fmt.Errorf("%w: sample space too large", ErrInvalidParameter)

	// Caller logic errors
	ErrPredicate = errors.New("predicate failed")

	// Invariant errors
	ErrCountMismatch = errors.New("enumerated count does not match closed form")

	// Lookup errors
	ErrNotFound         = errors.New("resource not found")
	ErrScenarioNotFound = fmt.Errorf("%w: scenario", ErrNotFound)
)

// Error constructors with context
func NewParameterError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidParameter, field, reason)
}

func NewCountMismatchError(enumerated, expected int64) error {
	return fmt.Errorf("%w: enumerated %d, expected %d", ErrCountMismatch, enumerated, expected)
}

// Error checking helpers
func IsParameterError(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

func IsPredicateError(err error) bool {
	return errors.Is(err, ErrPredicate)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
