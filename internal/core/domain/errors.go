package domain

import "errors"

// Error taxonomy shared by all usecases. Handlers map these to HTTP status
// codes; anything not wrapping one of them is treated as a transport or
// backend failure.
var (
	// ErrValidation marks malformed input, caught before any store call.
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks a lifecycle precondition violation, e.g. scheduling
	// a campaign that is already sent.
	ErrConflict = errors.New("conflict with current state")
	// ErrNotFound marks a reference to an absent record.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks a missing or invalid session, distinct from
	// data failures.
	ErrUnauthorized = errors.New("unauthorized")
)
