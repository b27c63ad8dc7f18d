package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrConflict is returned when a username or email is already taken.
	ErrConflict = errors.New("username already exists")
	// ErrInvalidCredentials is returned when identifier or password is incorrect.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrAccountBlocked is returned when a correctly authenticated user has status false.
	ErrAccountBlocked = errors.New("user blocked")
	// ErrUnauthorized is returned when a bearer token is missing, invalid or expired.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned when a user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrInternal is returned for unexpected store or hashing failures.
	ErrInternal = errors.New("internal server error")
)

// ValidationError carries one message per rejected field.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// NewValidationError creates a validation error from field messages.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Code       string   `json:"code"`
	Errors     []string `json:"errors,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Errors     []string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		StatusCode: e.StatusCode,
		Message:    e.Message,
		Code:       e.Code,
		Errors:     e.Errors,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// generic 500 so store details never reach the client.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		httpErr := NewHTTPError(http.StatusBadRequest, "Validation failed", "VALIDATION_FAILED")
		httpErr.Errors = validationErr.Fields
		return httpErr
	}

	switch {
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, ErrConflict.Error(), "CONFLICT")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrAccountBlocked):
		return NewHTTPError(http.StatusForbidden, ErrAccountBlocked.Error(), "ACCOUNT_BLOCKED")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthorized.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, ErrInternal.Error(), "INTERNAL_ERROR")
	}
}
