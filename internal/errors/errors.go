package errors

import (
	"errors"
	"fmt"
)

// Error kinds shared by the service and API layers
var (
	// ErrValidation indicates a submission failed input validation
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a lookup matched no row
	ErrNotFound = errors.New("resource not found")

	// ErrPersistence indicates any database-layer failure
	ErrPersistence = errors.New("persistence failure")

	// ErrRouteNotFound indicates no handler matched the request
	ErrRouteNotFound = errors.New("route not found")

	// ErrInvalidInput indicates a malformed request (bad body, bad path parameter)
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates a missing or wrong admin key
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the client exceeded its submission rate
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInternal indicates an unexpected server error
	ErrInternal = errors.New("internal server error")
)

// Error codes for API responses
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodePersistence   = "PERSISTENCE_ERROR"
	CodeRouteNotFound = "ROUTE_NOT_FOUND"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeRateLimited   = "RATE_LIMITED"
	CodeInternalError = "INTERNAL_ERROR"
)

// InternalMessage is the only text a client ever sees for an unexpected failure
const InternalMessage = "Internal server error"

// AppError represents an application error with context.
// Message is safe to show to clients; Cause is for server-side logs only.
type AppError struct {
	Err     error
	Cause   error
	Message string
	Code    string
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Err.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is/As
func (e *AppError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// NewAppError creates a new AppError
func NewAppError(err error, message string, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}

// NewValidationError creates a 400-class error carrying a human-readable message
func NewValidationError(cause error, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Cause:   cause,
		Message: message,
		Code:    CodeValidation,
	}
}

// NewNotFoundError creates an error for a lookup that matched nothing
func NewNotFoundError(message string) *AppError {
	return NewAppError(ErrNotFound, message, CodeNotFound)
}

// NewPersistenceError hides cause behind a generic public message
func NewPersistenceError(cause error, message string) *AppError {
	return &AppError{
		Err:     ErrPersistence,
		Cause:   cause,
		Message: message,
		Code:    CodePersistence,
	}
}

// NewInvalidInputError creates an error for a malformed request
func NewInvalidInputError(message string) *AppError {
	return NewAppError(ErrInvalidInput, message, CodeInvalidInput)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsPersistence checks if the error is a persistence error
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}

// GetErrorCode returns the appropriate error code for an error
func GetErrorCode(err error) string {
	switch {
	case IsValidation(err):
		return CodeValidation
	case IsNotFound(err):
		return CodeNotFound
	case errors.Is(err, ErrRouteNotFound):
		return CodeRouteNotFound
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited
	case IsPersistence(err):
		return CodePersistence
	default:
		return CodeInternalError
	}
}

// PublicMessage returns the client-facing text for err.
// Anything that is not an AppError collapses to InternalMessage.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return InternalMessage
}

// GetAppError extracts AppError from an error if it exists
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
