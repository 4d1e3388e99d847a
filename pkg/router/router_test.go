package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/plantnet/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRoutesAndPathLookup(t *testing.T) {
	r := router.New()
	r.Get("/plants", "plants.index", ok)
	r.Get("/plants/{id}", "plants.show", ok)

	path, found := r.Path("plants.show")
	require.True(t, found)
	assert.Equal(t, "/plants/{id}", path)

	_, found = r.Path("nope")
	assert.False(t, found)

	routes := r.Routes()
	assert.Equal(t, "/plants", routes["plants.index"])
}

func TestURLFillsParams(t *testing.T) {
	r := router.New()
	r.Get("/customer-orders/{email}", "orders.customer", ok)

	url, err := r.URL("orders.customer", map[string]string{"email": "buyer@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "/customer-orders/buyer@example.com", url)
}

func TestGroupPrefixesAndMiddleware(t *testing.T) {
	var gateHit bool
	gate := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gateHit = true
			next.ServeHTTP(w, r)
		})
	}

	r := router.New()
	g := r.Group("/admin", gate)
	g.Get("/stats", "admin.stats", ok)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gateHit)
}

func TestStaticRouteWinsOverParam(t *testing.T) {
	r := router.New()
	r.Get("/plants/seller", "plants.seller", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("seller")) //nolint:errcheck
	})
	r.Get("/plants/{id}", "plants.show", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("show")) //nolint:errcheck
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plants/seller", nil))

	assert.Equal(t, "seller", rec.Body.String())
}
