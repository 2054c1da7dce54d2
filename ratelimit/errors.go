package ratelimit

import "errors"

// Sentinel errors for admission control.
var (
	// ErrInvalidCapacity indicates a bucket capacity <= 0.
	ErrInvalidCapacity = errors.New("bucket capacity must be positive")

	// ErrInvalidRefillRate indicates a refill rate <= 0.
	ErrInvalidRefillRate = errors.New("refill rate must be positive")

	// ErrInvalidLimits indicates a limits profile that failed validation.
	ErrInvalidLimits = errors.New("invalid limits profile")

	// ErrAdmissionTimeout indicates admission did not complete within the
	// caller's deadline. The call was never dispatched; the caller decides
	// whether to retry or abort.
	ErrAdmissionTimeout = errors.New("admission timed out waiting for quota")
)
