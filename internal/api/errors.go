package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized covers missing tokens and 401/403 responses. The
	// caller decides whether to force re-authentication.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConflict maps 409 responses: duplicate folder or prompt name.
	ErrConflict = errors.New("duplicate name")

	ErrRequest         = errors.New("API request failed")
	ErrInvalidResponse = errors.New("invalid API response")
)

// StatusError carries the server's message for 400/500 responses so the
// engine can distinguish quota and ownership failures.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}
