package store

import "errors"

// Domain error taxonomy. Callers match with errors.Is; messages carry
// the detail needed to render a user-facing explanation. Anything not
// wrapped in one of these is an infrastructure failure and may be
// retried as a whole, since every mutation runs in a single
// transaction.
var (
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a uniqueness violation detected at write time.
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks an absent id, or one hidden by the soft-delete
	// default filter.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks a role-based policy denial.
	ErrForbidden = errors.New("forbidden")

	// ErrNotAvailable marks a resource not eligible for the requested
	// operation given its current status.
	ErrNotAvailable = errors.New("resource not available")

	// ErrDuplicateRequest marks a submission while an identical pending
	// request exists. Benign and recoverable; distinct from ErrConflict
	// because it reflects workflow state, not a storage constraint.
	ErrDuplicateRequest = errors.New("duplicate pending request")

	// ErrInvalidTransition marks a state machine misuse, e.g. deciding
	// an already-decided request.
	ErrInvalidTransition = errors.New("invalid status transition")
)
