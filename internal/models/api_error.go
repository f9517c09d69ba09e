package models

import "fmt"

// ErrorCode is a string type for consistent error codes.
type ErrorCode string

const (
	// ErrorCodeMissingParameter covers requests missing a required field.
	ErrorCodeMissingParameter ErrorCode = "missing_parameter"
	// ErrorCodeStorageError covers storage connectivity and query failures.
	ErrorCodeStorageError ErrorCode = "storage_error"
	// ErrorCodeInternalServerError covers everything else.
	ErrorCodeInternalServerError ErrorCode = "internal_server_error"
)

// APIError carries the HTTP status a failure maps to alongside a
// caller-facing message.
type APIError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
}

// Error makes APIError implement the error interface.
func (e APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewValidationError reports a missing required request field.
func NewValidationError(message string) APIError {
	return APIError{
		Code:       ErrorCodeMissingParameter,
		Message:    message,
		StatusCode: 400,
	}
}

// NewStorageError wraps a storage failure, passing the cause through
// to the caller.
func NewStorageError(cause error) APIError {
	return APIError{
		Code:       ErrorCodeStorageError,
		Message:    cause.Error(),
		StatusCode: 500,
	}
}
