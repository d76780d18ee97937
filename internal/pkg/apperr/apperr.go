package apperr

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks input rejected before any backend call.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidAIResponse marks generative output that could not be parsed.
	ErrInvalidAIResponse = errors.New("invalid AI response")
	// ErrEmptyAIResponse marks an empty generative response or extracted payload.
	ErrEmptyAIResponse = errors.New("empty AI response")
	// ErrBusy marks an operation rejected because one is already in flight.
	ErrBusy = errors.New("operation already in flight")
	// ErrAlreadyReplied marks a reply against a message that left the pending state.
	ErrAlreadyReplied = errors.New("message already replied")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
)
