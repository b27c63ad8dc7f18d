package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "conflict", err: ErrConflict, wantStatus: http.StatusConflict, wantCode: "CONFLICT"},
		{name: "wrapped conflict", err: fmt.Errorf("create user: %w", ErrConflict), wantStatus: http.StatusConflict, wantCode: "CONFLICT"},
		{name: "invalid credentials", err: ErrInvalidCredentials, wantStatus: http.StatusBadRequest, wantCode: "INVALID_CREDENTIALS"},
		{name: "blocked", err: ErrAccountBlocked, wantStatus: http.StatusForbidden, wantCode: "ACCOUNT_BLOCKED"},
		{name: "unauthorized", err: ErrUnauthorized, wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "not found", err: ErrNotFound, wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "unknown", err: errors.New("dial tcp: connection refused"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)

			resp := httpErr.ToErrorResponse()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Empty(t, resp.Errors)
		})
	}
}

func TestMapErrorToHTTP_HidesInternalDetails(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("Error 1045: Access denied for user 'root'"))
	assert.Equal(t, "internal server error", httpErr.Message)
}

func TestMapErrorToHTTP_Validation(t *testing.T) {
	err := fmt.Errorf("bind: %w", NewValidationError("username is required", "email must be a valid email"))

	httpErr := MapErrorToHTTP(err)

	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.Equal(t, []string{"username is required", "email must be a valid email"}, httpErr.ToErrorResponse().Errors)
}
