package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrConflict is returned by the store when an active booking for the
	// same resource overlaps the requested window, including the case
	// where a concurrent request won the slot first.
	ErrConflict = errors.New("booking window conflicts with an active booking")

	// ErrLockUnavailable means the per-resource advisory lock is held by
	// another in-flight create. The caller surfaces it as a conflict
	// rather than waiting.
	ErrLockUnavailable = errors.New("resource is locked by another booking request")
)
