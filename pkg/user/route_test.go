package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	svc := NewUserService(NewInMemoryUserRepository())
	h := Handler(NewHandle(svc))

	do := func(method, target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodPost, "/", `{"email":"erin@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "erin@example.com", created.Email)

	t.Run("duplicate", func(t *testing.T) {
		rec := do(http.MethodPost, "/", `{"email":"erin@example.com"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		rec := do(http.MethodPost, "/", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid email", func(t *testing.T) {
		rec := do(http.MethodPost, "/", `{"email":"nope"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get", func(t *testing.T) {
		rec := do(http.MethodGet, "/"+created.ID.String(), "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("get unknown", func(t *testing.T) {
		rec := do(http.MethodGet, "/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("get malformed id", func(t *testing.T) {
		rec := do(http.MethodGet, "/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update email", func(t *testing.T) {
		require.NoError(t, svc.MarkEmailVerified(context.Background(), created.ID))

		rec := do(http.MethodPut, "/"+created.ID.String()+"/email", `{"email":"erin@example.org"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var got User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "erin@example.org", got.Email)
		assert.False(t, got.EmailVerified)
	})
}
