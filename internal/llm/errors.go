package llm

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured is returned when no gateway is wired in. Callers treat
	// it as a normal condition rather than a failure.
	ErrNotConfigured = errors.New("llm gateway not configured")

	// ErrProviderUnavailable indicates the model server is unreachable.
	ErrProviderUnavailable = errors.New("llm provider unavailable")

	// ErrTimeout indicates the request exceeded its time budget.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the response could not be parsed or failed
	// validation.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted wraps the last error after every attempt failed.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)

// ErrorCode maps an error to the short code recorded in call events.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotConfigured):
		return "NOT_CONFIGURED"
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT"
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	case errors.Is(err, ErrProviderUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}
