package middleware

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/plantnet/pkg/auth"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/response"
	"github.com/shashiranjanraj/plantnet/pkg/session"
)

// emailKey is the unexported context key for the authenticated email.
type emailKey struct{}

// Auth verifies the session cookie and stores the caller's email in the
// request context. Absent, malformed, or expired tokens end the request
// with a 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := session.Read(r)
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.Verify(token)
		if err != nil {
			logger.WithCtx(r.Context()).Debug("auth: token rejected", "error", err)
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), emailKey{}, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// EmailFromCtx returns the authenticated email stored by Auth.
func EmailFromCtx(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey{}).(string)
	return email, ok && email != ""
}

// WithEmail stores email in ctx. Intended for tests that exercise handlers
// below the Auth middleware.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey{}, email)
}
