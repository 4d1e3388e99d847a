package rbac_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/plantnet/pkg/middleware"
	"github.com/shashiranjanraj/plantnet/pkg/rbac"
)

func staticRole(role string) rbac.LookupRole {
	return func(ctx context.Context, email string) (string, error) {
		return role, nil
	}
}

func TestCheckAllowsMatchingRole(t *testing.T) {
	d := rbac.Check(context.Background(), "a@b.c", "seller", staticRole("seller"))
	assert.True(t, d.Allowed)
}

func TestCheckDeniesWrongRole(t *testing.T) {
	d := rbac.Check(context.Background(), "a@b.c", "admin", staticRole("customer"))
	assert.False(t, d.Allowed)
	assert.Equal(t, "Forbidden Access! admin only Action!", d.Reason)
}

func TestCheckDeniesOnLookupError(t *testing.T) {
	lookup := func(ctx context.Context, email string) (string, error) {
		return "", errors.New("no such user")
	}
	d := rbac.Check(context.Background(), "a@b.c", "seller", lookup)
	assert.False(t, d.Allowed)
}

func gated(want string, lookup rbac.LookupRole) http.Handler {
	return rbac.Require(want, lookup)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRequireWithoutAuthContext(t *testing.T) {
	rec := httptest.NewRecorder()
	gated("admin", staticRole("admin")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireForbidsWrongRole(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(middleware.WithEmail(r.Context(), "a@b.c"))

	rec := httptest.NewRecorder()
	gated("seller", staticRole("customer")).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Forbidden Access! seller only Action!")
}

func TestRequireAllowsMatchingRole(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(middleware.WithEmail(r.Context(), "a@b.c"))

	rec := httptest.NewRecorder()
	gated("seller", staticRole("seller")).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// A promoted user gains access on the very next request because the role is
// re-read per request instead of being baked into the token.
func TestRequireSeesFreshRole(t *testing.T) {
	role := "customer"
	lookup := func(ctx context.Context, email string) (string, error) {
		return role, nil
	}
	h := gated("admin", lookup)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(middleware.WithEmail(r.Context(), "a@b.c"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	role = "admin"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
}
