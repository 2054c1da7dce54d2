package provider

import (
	"errors"
	"fmt"
)

// Sentinel errors for provider operations.
var (
	// ErrUnknownProvider indicates the requested provider is not registered.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrUnavailable indicates the remote service is unavailable.
	ErrUnavailable = errors.New("service unavailable")

	// ErrInvalidRequest indicates the request is malformed.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrAuthentication indicates the API key is missing or rejected.
	ErrAuthentication = errors.New("authentication failed")

	// ErrOverloaded indicates the provider rejected the call under load.
	// Note this is the provider's own server-side signal; client-side
	// admission control exists precisely to avoid provoking it.
	ErrOverloaded = errors.New("provider overloaded")

	// ErrTimeout indicates the request timed out.
	ErrTimeout = errors.New("request timed out")
)

// Error wraps provider errors with context.
type Error struct {
	Provider  string // Provider name ("anthropic", ...)
	Op        string // Operation that failed ("complete")
	Err       error  // Underlying error
	Retryable bool   // Whether the error is likely transient
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new provider error.
func NewError(provider, op string, err error, retryable bool) *Error {
	return &Error{
		Provider:  provider,
		Op:        op,
		Err:       err,
		Retryable: retryable,
	}
}

// IsRetryable checks if an error is likely transient. ratekit itself never
// retries; this is advisory for callers deciding what to do with a failure.
func IsRetryable(err error) bool {
	var provErr *Error
	if errors.As(err, &provErr) {
		return provErr.Retryable
	}
	return errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrOverloaded) ||
		errors.Is(err, ErrTimeout)
}
