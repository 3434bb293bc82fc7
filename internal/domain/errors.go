package domain

import "fmt"

// Error types for consistent error handling across the BFF.

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates a validation error (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrConflict indicates a resource already exists (e.g. duplicate email).
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	return e.Message
}

// ErrUnauthorized indicates invalid credentials or a missing session. The
// message never reveals whether an email is registered.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrInFlight indicates a scoring submission is already pending for the
// session.
type ErrInFlight struct{}

func (e *ErrInFlight) Error() string {
	return "a scoring request is already in flight"
}

// ErrScoringUnavailable is the uniform failure for the scoring exchange:
// transport error, non-2xx status, or a malformed response body.
type ErrScoringUnavailable struct {
	Err error
}

func (e *ErrScoringUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scoring unavailable: %v", e.Err)
	}
	return "scoring unavailable"
}

func (e *ErrScoringUnavailable) Unwrap() error {
	return e.Err
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}
