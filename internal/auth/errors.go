package auth

import (
	"fmt"
)

// Error codes for authentication failures
const (
	ErrInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	ErrLoginFailed        = "AUTH_LOGIN_FAILED"
	ErrRegisterFailed     = "AUTH_REGISTER_FAILED"
	ErrSessionPersist     = "AUTH_SESSION_PERSIST_FAILED"
	ErrNotAuthenticated   = "AUTH_NOT_AUTHENTICATED"
	ErrSessionExpired     = "AUTH_SESSION_EXPIRED"
)

// AuthError represents an authentication error with code and cause.
type AuthError struct {
	// Code is the error code (e.g., AUTH_INVALID_CREDENTIALS)
	Code string

	// Message is a human-readable error message, carrying the backend's
	// message when one was returned
	Message string

	// Cause is the underlying error that caused this error
	Cause error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Cause
}

// NewError creates a new AuthError.
func NewError(code, message string) *AuthError {
	return &AuthError{Code: code, Message: message}
}

// WrapError wraps an existing error with an AuthError.
func WrapError(code, message string, cause error) *AuthError {
	return &AuthError{Code: code, Message: message, Cause: cause}
}

// IsAuthError checks if an error is an AuthError with the given code.
func IsAuthError(err error, code string) bool {
	if authErr, ok := err.(*AuthError); ok {
		return authErr.Code == code
	}
	return false
}
