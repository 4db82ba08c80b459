package activation

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrBackend      = errors.New("backend failure")
	ErrInvalidInput = errors.New("invalid input")
	ErrOutBuffer    = errors.New("output buffer does not match result")
)

// Error is returned by every dispatcher operation that fails inside a backend.
// It keeps the original failure reachable through errors.Is / errors.As.
type Error struct {
	Op      string // Activation that failed ("logit", "prelu")
	Backend string // Backend name
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Backend, e.Err)
}

// Unwrap returns the underlying failure.
func (e *Error) Unwrap() error {
	return e.Err
}
