// Package apperrors is the application's error taxonomy. The repository and
// engine layers return *AppError so the façade can map a kind to an HTTP
// status code (see spec §7) without inspecting message strings.
package apperrors

import "fmt"

// ErrorType enumerates the taxonomy from spec §7.
type ErrorType string

const (
	ErrorTypeInvalidRequest ErrorType = "INVALID_REQUEST" // 400
	ErrorTypeUnprocessable  ErrorType = "UNPROCESSABLE"    // 422
	ErrorTypeNotFound       ErrorType = "NOT_FOUND"        // 404
	ErrorTypeValidation     ErrorType = "DATA_VALIDATION"  // 422
	ErrorTypeAuthFailure    ErrorType = "AUTH_FAILURE"     // 401
	ErrorTypeNotImplemented ErrorType = "NOT_IMPLEMENTED"  // 501
	ErrorTypeInternal       ErrorType = "INTERNAL"         // 500
)

// AppError is the custom error type for the application.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewInvalidRequest creates a 400-mapped error: malformed request or
// conflicting/xor-violating query parameters.
func NewInvalidRequest(message string) error {
	return &AppError{Type: ErrorTypeInvalidRequest, Message: message}
}

// NewUnprocessable creates a 422-mapped error: request payload fails schema
// validation (unknown field, wrong shape, forbidden combination).
func NewUnprocessable(message string) error {
	return &AppError{Type: ErrorTypeUnprocessable, Message: message}
}

// NewNotFound creates a 404-mapped error: the referenced id does not exist.
func NewNotFound(message string) error {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

// NewValidation creates a 422-mapped error: a graph-level invariant would be
// violated by the requested mutation.
func NewValidation(message string) error {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// NewAuthFailure creates a 401-mapped error.
func NewAuthFailure(message string) error {
	return &AppError{Type: ErrorTypeAuthFailure, Message: message}
}

// NewNotImplemented creates a 501-mapped error for explicitly unsupported paths.
func NewNotImplemented(message string) error {
	return &AppError{Type: ErrorTypeNotImplemented, Message: message}
}

// NewInternal creates a 500-mapped error wrapping an unexpected lower-layer failure.
func NewInternal(message string, err error) error {
	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}

// Wrap wraps an error with additional context, preserving an existing
// AppError's type so propagation never downgrades a typed failure to 500.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{Type: appErr.Type, Message: fmt.Sprintf("%s: %s", message, appErr.Message), Err: appErr.Err}
	}
	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}

func typeOf(err error) (ErrorType, bool) {
	appErr, ok := err.(*AppError)
	if !ok {
		return "", false
	}
	return appErr.Type, true
}

func IsInvalidRequest(err error) bool { t, ok := typeOf(err); return ok && t == ErrorTypeInvalidRequest }
func IsUnprocessable(err error) bool  { t, ok := typeOf(err); return ok && t == ErrorTypeUnprocessable }
func IsNotFound(err error) bool       { t, ok := typeOf(err); return ok && t == ErrorTypeNotFound }
func IsValidation(err error) bool     { t, ok := typeOf(err); return ok && t == ErrorTypeValidation }
func IsAuthFailure(err error) bool    { t, ok := typeOf(err); return ok && t == ErrorTypeAuthFailure }
func IsNotImplemented(err error) bool { t, ok := typeOf(err); return ok && t == ErrorTypeNotImplemented }
func IsInternal(err error) bool       { t, ok := typeOf(err); return ok && t == ErrorTypeInternal }

// StatusCode maps an error's type to the HTTP status spec §7 assigns it.
// Unrecognized errors (not an *AppError) map to 500.
func StatusCode(err error) int {
	t, ok := typeOf(err)
	if !ok {
		return 500
	}
	switch t {
	case ErrorTypeInvalidRequest:
		return 400
	case ErrorTypeUnprocessable, ErrorTypeValidation:
		return 422
	case ErrorTypeNotFound:
		return 404
	case ErrorTypeAuthFailure:
		return 401
	case ErrorTypeNotImplemented:
		return 501
	default:
		return 500
	}
}
