package service

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the operation error taxonomy. Services detect
// these at each operation boundary and return them as values; handlers map
// them 1:1 to HTTP status codes. Wrap with fmt.Errorf("...: %w", Err...) to
// add detail while keeping errors.Is matching intact.
var (
	// ErrNotFound means the entity id did not resolve.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means claims are valid but the permission or ownership
	// check failed.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState means the operation is illegal for the current
	// lifecycle state (inactive test, already-finished attempt).
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidArgument means an out-of-range index or malformed input.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Specific invalid-state conditions. Each wraps ErrInvalidState so callers
// can match either the family or the exact condition with errors.Is.
var (
	ErrTestNotActive   = fmt.Errorf("%w: test not active", ErrInvalidState)
	ErrAttemptFinished = fmt.Errorf("%w: attempt already finished", ErrInvalidState)
)
