// Package rbac gates routes on the caller's stored role.
//
// Unlike claim-based schemes, the role is re-read from the users collection
// on every request, so an admin promoting a user takes effect on that user's
// very next request with no session invalidation.
package rbac

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/middleware"
	"github.com/shashiranjanraj/plantnet/pkg/response"
)

// LookupRole resolves the stored role for an email. It must hit the store
// directly; callers rely on the read being fresh.
type LookupRole func(ctx context.Context, email string) (string, error)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allowed is the positive decision.
var Allowed = Decision{Allowed: true}

// Denied produces a negative decision with a reason for the 403 body.
func Denied(reason string) Decision {
	return Decision{Reason: reason}
}

// Check evaluates whether email holds the wanted role. A lookup error or an
// absent user denies; the error is logged, never surfaced.
func Check(ctx context.Context, email, want string, lookup LookupRole) Decision {
	role, err := lookup(ctx, email)
	if err != nil {
		logger.WithCtx(ctx).Debug("rbac: role lookup failed", "email", email, "error", err)
		return Denied("Forbidden Access! " + want + " only Action!")
	}
	if role != want {
		return Denied("Forbidden Access! " + want + " only Action!")
	}
	return Allowed
}

// Require returns middleware allowing only callers whose stored role equals
// want. It must run after middleware.Auth, which puts the email in context.
func Require(want string, lookup LookupRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := middleware.EmailFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}

			if d := Check(r.Context(), email, want, lookup); !d.Allowed {
				response.Forbidden(w, d.Reason)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
