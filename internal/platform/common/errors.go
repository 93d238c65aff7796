package common

import (
	"fmt"
	"net/http"
)

// ErrorKind represents the category of use case error.
// Each kind maps to a specific HTTP status code.
type ErrorKind int

const (
	// ErrorKindValidation represents input validation failures,
	// including uniqueness violations on (company, service, name).
	// Maps to HTTP 400 Bad Request.
	ErrorKindValidation ErrorKind = iota

	// ErrorKindBusinessRule represents invariant violations: mutating a
	// root role, granting company permissions to a non-reseller.
	// Maps to HTTP 409 Conflict.
	ErrorKindBusinessRule

	// ErrorKindNotFound represents entity not found errors.
	// Maps to HTTP 404 Not Found.
	ErrorKindNotFound

	// ErrorKindInternal represents unexpected internal errors.
	// Maps to HTTP 500 Internal Server Error.
	ErrorKindInternal
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindValidation:
		return "VALIDATION"
	case ErrorKindBusinessRule:
		return "BUSINESS_RULE"
	case ErrorKindNotFound:
		return "NOT_FOUND"
	case ErrorKindInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// HTTPStatus returns the HTTP status code for this error kind.
// The transport mapping lives with the caller; this is the suggested one.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case ErrorKindValidation:
		return http.StatusBadRequest
	case ErrorKindBusinessRule:
		return http.StatusConflict
	case ErrorKindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// UseCaseError represents an error from a use case execution.
// It contains structured information about what went wrong,
// suitable for both logging and API responses. Every message names the
// lookup or invariant that failed, never a generic failure.
type UseCaseError struct {
	Kind    ErrorKind      `json:"kind"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *UseCaseError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Kind.String(), e.Code, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for this error.
func (e *UseCaseError) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// Detail returns a string detail by key, or "" when absent.
func (e *UseCaseError) Detail(key string) string {
	if e.Details == nil {
		return ""
	}
	if v, ok := e.Details[key].(string); ok {
		return v
	}
	return ""
}

// ValidationError creates a new validation error.
// Use for malformed commands and uniqueness violations.
func ValidationError(code, message string, details map[string]any) *UseCaseError {
	return &UseCaseError{
		Kind:    ErrorKindValidation,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// BusinessRuleError creates a new invariant violation error.
// Use for protected-role and reseller-restriction failures.
func BusinessRuleError(code, message string, details map[string]any) *UseCaseError {
	return &UseCaseError{
		Kind:    ErrorKindBusinessRule,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NotFoundError creates a new not found error.
// Use when a referenced Company, User, or Role does not exist.
func NotFoundError(code, message string, details map[string]any) *UseCaseError {
	return &UseCaseError{
		Kind:    ErrorKindNotFound,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// InternalError creates a new internal error.
// Use for unexpected store failures; the surrounding transport owns
// retries.
func InternalError(code, message string, details map[string]any) *UseCaseError {
	return &UseCaseError{
		Kind:    ErrorKindInternal,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Error codes shared across use cases
const (
	// Validation error codes
	ErrCodeInvalidAction = "INVALID_ACTION"
	ErrCodeDuplicateRole = "DUPLICATE_ROLE"

	// Business rule error codes
	ErrCodeRootRoleProtected  = "ROOT_ROLE_PROTECTED"
	ErrCodeCompanyNotReseller = "COMPANY_NOT_RESELLER"
	ErrCodeDuplicateKey       = "DUPLICATE_KEY"
	ErrCodeCommitFailed       = "COMMIT_FAILED"

	// Not found error codes
	ErrCodeCompanyNotFound = "COMPANY_NOT_FOUND"
	ErrCodeUserNotFound    = "USER_NOT_FOUND"
	ErrCodeRoleNotFound    = "ROLE_NOT_FOUND"

	// Internal error codes
	ErrCodeDBError = "DB_ERROR"
)
