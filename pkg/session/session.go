// Package session manages the HTTP-only "token" cookie that carries the
// signed session credential.
//
// Logout is a pure cookie deletion: the server keeps no revocation state, so
// a copied token remains usable until it expires. This mirrors the upstream
// contract and is a documented limitation, not an oversight.
package session

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/pkg/auth"
)

// CookieName is the session cookie's name.
const CookieName = "token"

// Options configures the session cookie flags.
type Options struct {
	Secure   bool
	SameSite http.SameSite
	Path     string
}

// DefaultOptions derives cookie flags from the environment: cross-site
// (SameSite=None + Secure) in production where the frontend lives on another
// origin, Strict otherwise.
func DefaultOptions() Options {
	if config.Production() {
		return Options{Secure: true, SameSite: http.SameSiteNoneMode, Path: "/"}
	}
	return Options{Secure: false, SameSite: http.SameSiteStrictMode, Path: "/"}
}

// Write sets the session cookie carrying token on w.
func Write(w http.ResponseWriter, token string, opts Options) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     opts.Path,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
		Expires:  time.Now().Add(auth.TokenTTL),
	})
}

// Clear expires the session cookie on w. The token itself stays valid.
func Clear(w http.ResponseWriter, opts Options) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     opts.Path,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
		MaxAge:   -1,
	})
}

// Read returns the raw token from r's cookie jar, or "" when absent.
func Read(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
