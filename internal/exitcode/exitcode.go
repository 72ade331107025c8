// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"

	"taskboard/internal/service"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, validation, unknown task).
	UserError = 1

	// AuthError indicates a missing or rejected session.
	AuthError = 2

	// BackendError indicates a task service or network error.
	BackendError = 3
)

// FromError maps an error returned by the engine or the backend to an exit code.
func FromError(err error) int {
	var verr *service.ValidationError
	switch {
	case err == nil:
		return Success
	case service.IsAuth(err):
		return AuthError
	case errors.As(err, &verr), errors.Is(err, service.ErrTaskNotFound):
		return UserError
	default:
		return BackendError
	}
}
