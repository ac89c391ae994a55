package model

import "fmt"

// ValidationError reports a constructor argument that violates a model
// invariant. The Field names the offending argument and Reason states the
// rule that was broken.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// newValidationError is a convenience constructor used throughout the package.
func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
