package http

import (
	"fmt"
	"net/http"
)

// Wire error codes shared with the frontend.
const (
	CodeEmptyTicker    = "EMPTY_TICKER"
	CodeInvalidTicker  = "INVALID_TICKER"
	CodeIncompleteData = "INCOMPLETE_DATA"
	CodeNoHints        = "NO_HINTS"
	CodeChartFailed    = "CHART_FAILED"
	CodeRateLimited    = "RATE_LIMITED"
	CodeInternal       = "INTERNAL"
)

// AppError represents application-level error with HTTP status.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error.
func NewAppError(code, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// WithError wraps an underlying error.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// BadRequestError creates a 400 error (malformed input).
func BadRequestError(code, message string) *AppError {
	return NewAppError(code, message, http.StatusBadRequest)
}

// UnprocessableError creates a 422 error (semantically invalid input).
func UnprocessableError(code, message string) *AppError {
	return NewAppError(code, message, http.StatusUnprocessableEntity)
}

// InternalError creates a 500 error.
func InternalError(code, message string) *AppError {
	return NewAppError(code, message, http.StatusInternalServerError)
}
