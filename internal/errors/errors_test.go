package errors

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	err := NotFound("no movie titled \"Alpha\"")
	assert.Equal(t, "no movie titled \"Alpha\"", err.Error())
}

func TestError_MessageWithCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Unavailable("failed to fetch catalog").WithCause(cause)

	assert.Contains(t, err.Error(), "failed to fetch catalog")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestIs_MatchesByCode(t *testing.T) {
	assert.True(t, Is(NotFoundf("no movie titled %q", "Alpha"), ErrNotFound))
	assert.True(t, Is(Validation("bad"), ErrValidation))
	assert.True(t, Is(Unavailable("down"), ErrUnavailable))
	assert.False(t, Is(NotFound("gone"), ErrValidation))
}

func TestIs_SeesThroughWrapping(t *testing.T) {
	cause := context.Canceled
	err := Wrapf(cause, CodeUnavailable, "load aborted")

	assert.True(t, Is(err, ErrUnavailable))
	// The original cause stays reachable for abandonment checks.
	assert.True(t, Is(err, context.Canceled))
}

func TestAs(t *testing.T) {
	var domainErr *Error
	require.True(t, As(NotFound("gone"), &domainErr))
	assert.Equal(t, CodeNotFound, domainErr.Code)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Validation("x"), http.StatusBadRequest},
		{Unavailable("x"), http.StatusServiceUnavailable},
		{Conflict("x"), http.StatusConflict},
		{Internal("x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.HTTPStatus(), "code %s", tt.err.Code)
	}
}

func TestWithDetails(t *testing.T) {
	base := Validation("validation failed")
	detailed := base.WithDetails(map[string]string{"year": "is required"})

	assert.Nil(t, base.Details, "original must be untouched")
	assert.NotNil(t, detailed.Details)
	assert.Equal(t, base.Code, detailed.Code)
}

func TestValidationWithDetails(t *testing.T) {
	err := ValidationWithDetails("validation failed", map[string]string{"title": "is required"})

	assert.Equal(t, CodeValidation, err.Code)
	details, ok := err.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["title"])
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Wrap(cause, CodeInternal, "something broke")

	assert.Equal(t, cause, Unwrap(err))
}
