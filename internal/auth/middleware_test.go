package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/smart-quiz/internal/auth"
)

func TestAuthMiddleware(t *testing.T) {
	auth.SetSecret(testSecret)

	var seen *auth.Claims
	h := auth.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.GetUserClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("BearerToken", func(t *testing.T) {
		token, err := auth.GenerateJWT(testUserID, "user", time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, testUserID, seen.UserID)
	})

	t.Run("Cookie", func(t *testing.T) {
		token, err := auth.GenerateJWT(testUserID, "user", time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/quizzes", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Garbage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAPIKeyMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	cases := []struct {
		name       string
		configured string
		sent       string
		want       int
	}{
		{"Match", "s3cret", "s3cret", http.StatusOK},
		{"Mismatch", "s3cret", "nope", http.StatusUnauthorized},
		{"Missing", "s3cret", "", http.StatusUnauthorized},
		{"NotConfigured", "", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			if tc.sent != "" {
				req.Header.Set("x-api-key", tc.sent)
			}
			rec := httptest.NewRecorder()
			auth.APIKeyMiddleware("x-api-key", tc.configured)(ok).ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
