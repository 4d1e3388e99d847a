package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/pkg/auth"
	"github.com/shashiranjanraj/plantnet/pkg/middleware"
	"github.com/shashiranjanraj/plantnet/pkg/session"
)

func protected(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var seenEmail string
	h := middleware.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, _ := middleware.EmailFromCtx(r.Context())
		seenEmail = email
		w.WriteHeader(http.StatusOK)
	}))
	return h, &seenEmail
}

func TestAuthMissingCookie(t *testing.T) {
	h, _ := protected(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized access")
}

func TestAuthBadToken(t *testing.T) {
	config.Set("JWT_SECRET", "test-secret")
	h, _ := protected(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "garbage"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthValidTokenPassesEmail(t *testing.T) {
	config.Set("JWT_SECRET", "test-secret")
	h, seenEmail := protected(t)

	token, err := auth.Issue("buyer@example.com")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "buyer@example.com", *seenEmail)
}

func TestEmailFromCtxAbsent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := middleware.EmailFromCtx(r.Context())
	assert.False(t, ok)
}
