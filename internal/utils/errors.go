package utils

import (
	"errors"
	"net/http"
)

// AppError carries an HTTP status alongside a client-safe message.
// Handlers map it to the response envelope; anything that is not an
// AppError is reported as a generic 500 so internals never leak.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string { return e.Message }

// NewValidationError reports bad or missing input (400).
func NewValidationError(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

// NewAuthError reports a missing, malformed, or invalid credential (401).
func NewAuthError(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: message}
}

// NewForbiddenError reports an insufficient role (403).
func NewForbiddenError(message string) *AppError {
	return &AppError{Status: http.StatusForbidden, Message: message}
}

// NewNotFoundError reports an absent entity (404).
func NewNotFoundError(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message}
}

// NewConflictError reports a uniqueness violation such as a duplicate
// name or email (409).
func NewConflictError(message string) *AppError {
	return &AppError{Status: http.StatusConflict, Message: message}
}

// NewUnavailableError reports an unreachable downstream peer whose
// availability the operation depends on (503).
func NewUnavailableError(message string) *AppError {
	return &AppError{Status: http.StatusServiceUnavailable, Message: message}
}

// AsAppError unwraps err into an AppError if one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
