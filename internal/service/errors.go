package service

import (
	"errors"
	"fmt"
)

// GenericFailure is the message used when a failed response has no body.
const GenericFailure = "server error"

var (
	// ErrUnauthenticated is returned when no access credential is stored.
	ErrUnauthenticated = errors.New("not logged in")

	// ErrTaskNotFound is returned when a task is not in the local cache.
	ErrTaskNotFound = errors.New("task not found")

	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = errors.New("cancelled")
)

// AuthError reports a missing, expired or rejected credential.
// It is handled by forcing a logout, never shown inline.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return "authorization failed"
	}
	return "authorization failed: " + e.Reason
}

// Is lets errors.Is(err, ErrUnauthenticated) match any AuthError.
func (e *AuthError) Is(target error) bool {
	return target == ErrUnauthenticated
}

// ValidationError reports a required field missing before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RemoteError reports a non-success response from the task service.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return GenericFailure
	}
	return e.Message
}

// NetworkError reports a transport-level failure.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsAuth reports whether err is an authorization failure.
func IsAuth(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// Required returns a ValidationError for an empty required field.
func Required(field string) error {
	return &ValidationError{Field: field, Message: field + " required"}
}
