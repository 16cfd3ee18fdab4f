package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	cause := stderrors.New("session not found")
	err := Wrap(cause, ErrCodeSessionExpired, "Authentication session expired").WithDetail("session_id", "abc")

	assert.Equal(t, "[SESSION_EXPIRED] Authentication session expired: session not found", err.Error())
	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, ErrCodeSessionExpired, GetCode(err))
	assert.Equal(t, http.StatusGone, err.HTTPStatusCode())
	assert.Equal(t, Response{
		Code:    ErrCodeSessionExpired,
		Message: "Authentication session expired",
		Details: map[string]any{"session_id": "abc"},
	}, err.Response())

	assert.Nil(t, Wrap(nil, ErrCodeInternal, "unused"))
	assert.Equal(t, ErrCodeInternal, GetCode(cause))
	assert.Equal(t, "[NOT_FOUND] missing", New(ErrCodeNotFound, "missing").Error())
}

func TestMapErrorCodeToHTTPStatus(t *testing.T) {
	tests := map[ErrorCode]int{
		ErrCodeInvalidInput:   http.StatusBadRequest,
		ErrCodeEmailMismatch:  http.StatusBadRequest,
		ErrCodeTokenExpired:   http.StatusUnauthorized,
		ErrCodeTokenInvalid:   http.StatusUnauthorized,
		ErrCodeNotFound:       http.StatusNotFound,
		ErrCodeUserNotFound:   http.StatusNotFound,
		ErrCodeSessionExpired: http.StatusGone,
		ErrCodeInternal:       http.StatusInternalServerError,
		"SOMETHING_ELSE":      http.StatusInternalServerError,
	}
	for code, want := range tests {
		t.Run(string(code), func(t *testing.T) {
			assert.Equal(t, want, MapErrorCodeToHTTPStatus(code))
		})
	}
}
