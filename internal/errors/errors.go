package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/vytor/leitnerbox/internal/leitner"
	"github.com/vytor/leitnerbox/internal/quiz"
)

// Error codes
const (
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeConflict   = "CONFLICT"
	ErrCodeBusy       = "BUSY"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
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

// NewConflictError creates a new CONFLICT error
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
		Status:  http.StatusConflict,
	}
}

// NewBusyError reports a saturated background queue.
func NewBusyError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBusy,
		Message: message,
		Status:  http.StatusServiceUnavailable,
	}
}

// FromDomain converts scheduler and quiz errors into AppErrors. Errors that
// already are AppErrors pass through; anything unknown is internal.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stderrors.Is(err, leitner.ErrInvalidSessionSize):
		return &AppError{Code: ErrCodeValidation, Message: err.Error(), Status: http.StatusBadRequest, Err: err}
	case stderrors.Is(err, leitner.ErrInvalidRecord), stderrors.Is(err, leitner.ErrInvalidBox):
		return &AppError{Code: ErrCodeValidation, Message: err.Error(), Status: http.StatusBadRequest, Err: err}
	case stderrors.Is(err, quiz.ErrNoQuestion), stderrors.Is(err, quiz.ErrMalformedChoice):
		return &AppError{Code: ErrCodeValidation, Message: err.Error(), Status: http.StatusUnprocessableEntity, Err: err}
	default:
		// ErrCardBoxDesync lands here: a broken invariant is a server fault.
		return NewInternalError(err)
	}
}
