package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a custom error type for API responses
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

// Error returns the error message
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches APIErrors by code so a sentinel with a custom message still
// compares equal to its kind.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func NewAPIError(code, message string, status int, details ...string) *APIError {
	err := &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeConflict           = "CONFLICT"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

var (
	ErrInvalidInput = NewAPIError(CodeInvalidInput, "Invalid request data", http.StatusBadRequest)
	ErrUnauthorized = NewAPIError(CodeUnauthorized, "Unauthorized", http.StatusUnauthorized)
	ErrNotFound     = NewAPIError(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrInternal     = NewAPIError(CodeInternal, "Internal server error", http.StatusInternalServerError)
	// Duplicate keys are reported as 400 to match the client contract.
	ErrConflict = NewAPIError(CodeConflict, "Resource conflict", http.StatusBadRequest)
	// Login failures share one message whether the email or the password was wrong.
	ErrInvalidCredentials = NewAPIError(CodeInvalidCredentials, "Invalid email or password", http.StatusBadRequest)

	ErrUserNotFound = NewAPIError(CodeNotFound, "User not found", http.StatusNotFound)
)

func Validation(message string) *APIError {
	return NewAPIError(CodeInvalidInput, message, http.StatusBadRequest)
}

func Conflict(message string) *APIError {
	return NewAPIError(CodeConflict, message, http.StatusBadRequest)
}

func NotFound(message string) *APIError {
	return NewAPIError(CodeNotFound, message, http.StatusNotFound)
}

// IsAuth reports whether err is a token or credential failure.
func IsAuth(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidCredentials)
}

func Wrap(err error, code, message string, status int) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewAPIError(code, message, status, err.Error())
}

// Internal wraps an unexpected failure as a 500, keeping any APIError as is.
func Internal(err error, message string) *APIError {
	return Wrap(err, CodeInternal, message, http.StatusInternalServerError)
}
