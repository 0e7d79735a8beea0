package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeUnavailable  = "UNAVAILABLE"
)

// AppError represents an application error with HTTP status code and error code.
// Message is safe to show to the client; Err is for logs only.
type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id any) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  http.StatusNotFound,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  http.StatusBadRequest,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewUnauthorizedError creates a new UNAUTHORIZED error
func NewUnauthorizedError() *AppError {
	return &AppError{
		Code:    ErrCodeUnauthorized,
		Message: "unauthorized",
		Status:  http.StatusUnauthorized,
	}
}

// NewRateLimitError creates a new RATE_LIMITED error
func NewRateLimitError() *AppError {
	return &AppError{
		Code:    ErrCodeRateLimited,
		Message: "too many requests, please slow down",
		Status:  http.StatusTooManyRequests,
	}
}

// NewUnavailableError reports that a feature could not produce a result.
// The message names only the feature, never the cause.
func NewUnavailableError(feature string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeUnavailable,
		Message: feature + " unavailable",
		Status:  http.StatusServiceUnavailable,
		Err:     err,
	}
}
