package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClaims struct{ userID string }

func (c *stubClaims) GetUserID() string { return c.userID }

type stubValidator struct {
	userID string
	err    error
}

func (v *stubValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	if v.err != nil {
		return nil, v.err
	}
	return &stubClaims{userID: v.userID}, nil
}

func protectedHandler(t *testing.T, wantUserID string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserID(r)
		require.NoError(t, err)
		assert.Equal(t, wantUserID, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	userID := "USR_20250901143015_a1b2c3d4"

	t.Run("valid bearer token", func(t *testing.T) {
		handler := AuthMiddleware(&stubValidator{userID: userID})(protectedHandler(t, userID))
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Bearer token123")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("lowercase bearer prefix", func(t *testing.T) {
		handler := AuthMiddleware(&stubValidator{userID: userID})(protectedHandler(t, userID))
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "bearer token123")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	rejectCases := []struct {
		name   string
		header string
		v      *stubValidator
	}{
		{"missing header", "", &stubValidator{userID: userID}},
		{"wrong scheme", "Basic dXNlcjpwYXNz", &stubValidator{userID: userID}},
		{"no token", "Bearer", &stubValidator{userID: userID}},
		{"invalid token", "Bearer bad", &stubValidator{err: errors.New("signature invalid")}},
	}
	for _, tt := range rejectCases {
		t.Run(tt.name, func(t *testing.T) {
			handler := AuthMiddleware(tt.v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			}))
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestGetUserIDWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	_, err := GetUserID(req)
	assert.Error(t, err)
}
