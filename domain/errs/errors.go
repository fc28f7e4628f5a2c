// Package errs defines the error taxonomy shared by every module.
//
// Module-level sentinels wrap one of these with %w so callers can classify
// any error with errors.Is without knowing which module produced it.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a missing or malformed input.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a lookup by id that matched nothing.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks a missing, invalid or insufficient credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict marks a write that collides with existing data.
	ErrConflict = errors.New("conflict")
	// ErrStorage marks a failure of the underlying data store.
	ErrStorage = errors.New("storage error")
)

// ValidationError describes which field failed validation and why.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Storage wraps a data store failure so it classifies as ErrStorage while
// keeping the original cause reachable.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
