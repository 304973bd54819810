// Package apperr defines the structured error taxonomy shared by all layers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Session errors
	CodeSessionNotFound = "SESSION_NOT_FOUND"
	CodeUnauthenticated = "UNAUTHENTICATED"

	// Validation errors
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeInvalidFilterOption = "INVALID_FILTER_OPTION"
	CodeBadRequest          = "BAD_REQUEST"
	CodeMissingField        = "MISSING_FIELD"

	// Resource errors
	CodeNotFound = "NOT_FOUND"

	// External errors
	CodeUpstreamFailure = "UPSTREAM_FAILURE"
	CodeOAuthFailed     = "OAUTH_FAILED"

	// Internal errors
	CodeInternalError = "INTERNAL_ERROR"
	CodeConfigError   = "CONFIG_ERROR"
)

// AppError represents a structured application error.
type AppError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Status  int            `json:"-"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// HTTPStatus returns the HTTP status code.
func (e *AppError) HTTPStatus() int {
	return e.Status
}

func New(code, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

func Wrap(err error, code, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Session errors

// SessionNotFound reports an unknown or expired session identifier.
func SessionNotFound(sessionID string) *AppError {
	return &AppError{
		Code:    CodeSessionNotFound,
		Message: "session not found or not authenticated",
		Status:  http.StatusUnauthorized,
		Details: map[string]any{"session_id": sessionID},
	}
}

func Unauthenticated(message string) *AppError {
	if message == "" {
		message = "not authenticated"
	}
	return &AppError{
		Code:    CodeUnauthenticated,
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// Validation errors

func BadRequest(message string) *AppError {
	return &AppError{
		Code:    CodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

func ValidationFailed(field, reason string) *AppError {
	return &AppError{
		Code:    CodeValidationFailed,
		Message: fmt.Sprintf("invalid value for '%s': %s", field, reason),
		Status:  http.StatusBadRequest,
		Details: map[string]any{"field": field},
	}
}

// InvalidFilterOption reports a filter option outside the accepted set.
func InvalidFilterOption(option, value string) *AppError {
	return &AppError{
		Code:    CodeInvalidFilterOption,
		Message: fmt.Sprintf("unsupported %s value: %q", option, value),
		Status:  http.StatusBadRequest,
		Details: map[string]any{"option": option, "value": value},
	}
}

func MissingField(field string) *AppError {
	return &AppError{
		Code:    CodeMissingField,
		Message: fmt.Sprintf("missing required field: %s", field),
		Status:  http.StatusBadRequest,
		Details: map[string]any{"field": field},
	}
}

// Resource errors

func NotFound(resource string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
	}
}

// External errors

// Upstream reports a non-2xx or transport failure from an external provider,
// carrying the provider's message verbatim.
func Upstream(service, message string) *AppError {
	return &AppError{
		Code:    CodeUpstreamFailure,
		Message: message,
		Status:  http.StatusBadGateway,
		Details: map[string]any{"service": service},
	}
}

func OAuthFailed(message string, err error) *AppError {
	return &AppError{
		Code:    CodeOAuthFailed,
		Message: message,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

// Internal errors

func Internal(message string) *AppError {
	if message == "" {
		message = "internal server error"
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}

func InternalWithError(err error) *AppError {
	return &AppError{
		Code:    CodeInternalError,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func ConfigError(message string) *AppError {
	return &AppError{
		Code:    CodeConfigError,
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}

// Helper functions

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalWithError(err)
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func GetHTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
