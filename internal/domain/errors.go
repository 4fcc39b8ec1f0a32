package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel wrapped by every InputError.
var ErrInvalidInput = errors.New("invalid input")

// InputError reports a value rejected at the boundary of the analytics core.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func newInputError(field, format string, args ...any) *InputError {
	return &InputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ValidateTaskCount rejects negative task counts.
func ValidateTaskCount(n int) error {
	if n < 0 {
		return newInputError("task count", "must be non-negative, got %d", n)
	}
	return nil
}
