package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced to API clients.
const (
	CodeValidation       = "VAL_001"
	CodeCurrencyMismatch = "MNY_001"
	CodeDivisionByZero   = "MNY_002"
	CodeNotFound         = "RES_001"
	CodeInvalidCreds     = "AUTH_001"
	CodeDuplicate        = "AUTH_002"
	CodeInvalidToken     = "AUTH_003"
	CodeAccountInactive  = "AUTH_004"
	CodeForbidden        = "AUTH_005"
	CodeRateLimited      = "RATE_001"
	CodeInternal         = "SYS_001"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// HasCode reports whether err, or any error it wraps, is an AppError with code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// ---- Validation (VAL) ----

// Validation returns a validation error without field context.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

// ValidationField returns a validation error naming the offending field.
func ValidationField(field, message string) *AppError {
	e := Validation(message)
	e.Field = field
	return e
}

// ---- Money (MNY) ----

func ErrCurrencyMismatch(left, right string) *AppError {
	return New(CodeCurrencyMismatch,
		fmt.Sprintf("cannot combine amounts in %s and %s", left, right),
		http.StatusUnprocessableEntity)
}

func ErrDivisionByZero() *AppError {
	return New(CodeDivisionByZero, "division by zero", http.StatusBadRequest)
}

// ---- Resources (RES) ----

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Authentication & Authorization (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New(CodeInvalidCreds, "Invalid credentials", http.StatusUnauthorized)
}

func ErrDuplicate(field string) *AppError {
	e := New(CodeDuplicate, fmt.Sprintf("%s already exists", field), http.StatusConflict)
	e.Field = field
	return e
}

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
}

func ErrAccountInactive() *AppError {
	return New(CodeAccountInactive, "Account is deactivated", http.StatusForbidden)
}

func ErrForbidden() *AppError {
	return New(CodeForbidden, "Insufficient permissions", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimited, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap(CodeInternal, "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}
