package icomfort

import (
	"errors"
	"fmt"
)

// Sentinel errors for the client's linear precondition chain:
// unauthenticated -> authenticated -> snapshot loaded.
var (
	// ErrNotAuthenticated is returned by operations that need a gateway
	// serial number before Login has succeeded.
	ErrNotAuthenticated = errors.New("not authenticated: call Login first")

	// ErrNoStatus is returned by push operations that need the current
	// settings before the first successful PullStatus.
	ErrNoStatus = errors.New("no status loaded: call PullStatus first")
)

// AuthError indicates rejected credentials or a rejected session.
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication rejected (status %d): check username and password", e.StatusCode)
}

// NetworkError indicates a transport-level failure: connectivity, timeout,
// or a non-auth error status from the service.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: service returned status %d", e.Op, e.StatusCode)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError indicates a response that was not well-formed JSON or was
// missing fields the client requires.
type ParseError struct {
	Op     string
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: bad response field %s: %s", e.Op, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: bad response: %s", e.Op, e.Reason)
}

// ValidationError indicates a caller-supplied value outside the device's
// supported range.
type ValidationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s = %v, %s", e.Field, e.Value, e.Reason)
}
