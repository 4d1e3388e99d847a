package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/plantnet/config"
)

func recordedCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestWriteSetsHTTPOnlyCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, "tok123", Options{SameSite: http.SameSiteStrictMode, Path: "/"})

	c := recordedCookie(t, rec)
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "tok123", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
	assert.False(t, c.Expires.IsZero())
}

func TestDefaultOptionsProduction(t *testing.T) {
	config.Set("APP_ENV", "production")
	t.Cleanup(func() { config.Set("APP_ENV", "development") })

	opts := DefaultOptions()
	assert.True(t, opts.Secure)
	assert.Equal(t, http.SameSiteNoneMode, opts.SameSite)
}

func TestDefaultOptionsDevelopment(t *testing.T) {
	config.Set("APP_ENV", "development")

	opts := DefaultOptions()
	assert.False(t, opts.Secure)
	assert.Equal(t, http.SameSiteStrictMode, opts.SameSite)
}

func TestClearExpiresCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	Clear(rec, DefaultOptions())

	c := recordedCookie(t, rec)
	assert.Equal(t, CookieName, c.Name)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
}

func TestReadReturnsTokenOrEmpty(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, Read(r))

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "tok123"})
	assert.Equal(t, "tok123", Read(r))
}
