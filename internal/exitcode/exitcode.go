// Package exitcode maps error classes to process exit codes for consistent
// scripting against the CLI.
package exitcode

import (
	"errors"
	"os"

	"github.com/carelane/carectl/internal/api"
	"github.com/carelane/carectl/internal/appointment"
	"github.com/carelane/carectl/internal/auth"
	"github.com/carelane/carectl/internal/authz"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ValidationError indicates input rejected by client-side validation
	ValidationError = 3

	// AuthError indicates an authentication failure or a missing session
	AuthError = 4

	// ForbiddenError indicates the backend denied the action for this user
	ForbiddenError = 5

	// NetworkError indicates the backend was unreachable or failing
	NetworkError = 6

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code.
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type.
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var verr *appointment.ValidationError
	if errors.As(err, &verr) {
		return ValidationError
	}

	var permErr *authz.PermissionError
	if errors.As(err, &permErr) {
		return ForbiddenError
	}

	var transErr *appointment.TransitionError
	if errors.As(err, &transErr) {
		return ValidationError
	}

	var authErr *auth.AuthError
	if errors.As(err, &authErr) {
		return AuthError
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Unauthorized():
			return AuthError
		case apiErr.Forbidden():
			return ForbiddenError
		case apiErr.StatusCode >= 500:
			return NetworkError
		default:
			return GeneralError
		}
	}

	return GeneralError
}
