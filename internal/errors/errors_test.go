package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	err := NotFound("submission not found")
	assert.Equal(t, "submission not found", err.Error())

	wrapped := err.WithCause(fmt.Errorf("sql: no rows"))
	assert.Equal(t, "submission not found: sql: no rows", wrapped.Error())
}

func TestSentinelMatching(t *testing.T) {
	err := AlreadyExists("This email is already registered")

	assert.True(t, Is(err, ErrAlreadyExists))
	assert.False(t, Is(err, ErrNotFound))

	// Matching survives wrapping.
	wrapped := fmt.Errorf("submit: %w", err)
	assert.True(t, Is(wrapped, ErrAlreadyExists))
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", Validation("validation failed"))

	var domErr *Error
	require.True(t, As(wrapped, &domErr))
	assert.Equal(t, CodeValidation, domErr.Code)
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Internal("failed to store submission").WithCause(cause)

	assert.Equal(t, cause, Unwrap(err))
	assert.True(t, Is(err, cause))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeAlreadyExists, http.StatusConflict},
		{CodeValidation, http.StatusBadRequest},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.HTTPStatus(), "code %s", tt.code)
	}
}

func TestWithDetails(t *testing.T) {
	details := map[string]string{"email": "Email is required"}
	err := ValidationWithDetails("validation failed", details)

	assert.Equal(t, CodeValidation, err.Code)
	assert.Equal(t, details, err.Details)

	// WithDetails does not mutate the original.
	base := Validation("validation failed")
	decorated := base.WithDetails(details)
	assert.Nil(t, base.Details)
	assert.NotNil(t, decorated.Details)
}
