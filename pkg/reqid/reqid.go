// Package reqid tags every request with a correlation ID. The ID rides in
// the X-Request-ID header and the request context, and the Logger
// middleware stamps it onto every log line for the request.
package reqid

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

// Header is the HTTP header carrying the request ID.
const Header = "X-Request-ID"

// maxInboundLen caps how much of a client-supplied ID is honoured.
const maxInboundLen = 64

type ctxKey struct{}

// New returns a fresh random ID, 24 hex characters.
func New() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// WithValue stores id in ctx.
func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx returns the request ID stored in ctx, or "" when absent.
func FromCtx(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Middleware assigns each request an ID and echoes it in the response.
// An inbound X-Request-ID from an upstream proxy is kept so traces join
// up across services; oversized values are replaced, not truncated.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" || len(id) > maxInboundLen {
				id = New()
			}

			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithValue(r.Context(), id)))
		})
	}
}
