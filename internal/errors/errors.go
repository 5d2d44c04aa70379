package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeValidation indicates invalid input data; Fields carries per-field messages.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeAPI indicates the remote API answered with a non-success status.
	ErrCodeAPI ErrorCode = "api"
	// ErrCodeTransport indicates the remote API could not be reached.
	ErrCodeTransport ErrorCode = "transport"
	// ErrCodeNonJSON indicates the remote API answered with a non-JSON content type.
	ErrCodeNonJSON ErrorCode = "non_json"
	// ErrCodeMalformed indicates the remote API answered with JSON that could not be decoded.
	ErrCodeMalformed ErrorCode = "malformed"
	// ErrCodeAuth indicates missing, expired, or rejected credentials.
	ErrCodeAuth ErrorCode = "auth"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
	// Fields maps field names to their messages (validation and API errors)
	Fields map[string][]string
	// Status is the HTTP status reported by the remote API (API errors only)
	Status int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: message,
	}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return NotFound(fmt.Sprintf(format, args...))
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
		Fields:  map[string][]string{field: {message}},
	}
}

// ValidationFields creates a Validation error carrying a full field-error map.
func ValidationFields(message string, fields map[string][]string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Fields:  fields,
	}
}

// API creates an error for a non-success answer from the remote API.
// message and fields are taken from the response envelope when present.
func API(status int, message string, fields map[string][]string) *AppError {
	if message == "" {
		message = StatusMessage(status)
	}
	return &AppError{
		Code:    ErrCodeAPI,
		Message: message,
		Fields:  fields,
		Status:  status,
	}
}

// StatusMessage is the message API uses when the server sent none.
func StatusMessage(status int) string {
	return fmt.Sprintf("request failed with status %d", status)
}

// Transport wraps a network-level failure talking to the remote API.
func Transport(err error) *AppError {
	return Wrap(err, ErrCodeTransport, "request failed")
}

// NonJSON reports a response whose content type is not JSON.
func NonJSON(contentType string) *AppError {
	return &AppError{
		Code:    ErrCodeNonJSON,
		Message: fmt.Sprintf("unexpected response content type %q", contentType),
	}
}

// Malformed wraps a JSON decoding failure on a response body.
func Malformed(err error) *AppError {
	return Wrap(err, ErrCodeMalformed, "malformed response body")
}

// Auth creates a new Auth error.
func Auth(message string) *AppError {
	return &AppError{
		Code:    ErrCodeAuth,
		Message: message,
	}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
	}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return Internal(fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsAPI checks if an error is an API error.
func IsAPI(err error) bool {
	return isCode(err, ErrCodeAPI)
}

// IsTransport checks if an error is a Transport error.
func IsTransport(err error) bool {
	return isCode(err, ErrCodeTransport)
}

// IsNonJSON checks if an error is a NonJSON error.
func IsNonJSON(err error) bool {
	return isCode(err, ErrCodeNonJSON)
}

// IsMalformed checks if an error is a Malformed error.
func IsMalformed(err error) bool {
	return isCode(err, ErrCodeMalformed)
}

// IsAuth checks if an error is an Auth error.
func IsAuth(err error) bool {
	return isCode(err, ErrCodeAuth)
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool {
	return isCode(err, ErrCodeInternal)
}

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool {
	return isCode(err, ErrCodeTimeout)
}

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool {
	return isCode(err, ErrCodeCanceled)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// FieldErrors returns the per-field messages carried by err, or nil.
func FieldErrors(err error) map[string][]string {
	var appErr *AppError
	if errors.As(err, &appErr) && len(appErr.Fields) > 0 {
		return appErr.Fields
	}
	return nil
}

// Message returns the human-readable message of the outermost AppError in err's chain.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}
