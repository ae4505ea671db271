package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func header(key string) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Chain", key)
			next.ServeHTTP(w, r)
		})
	}
}

func TestGroupMiddlewareOrder(t *testing.T) {
	r := router.New()
	api := r.Group("/products", header("group"))
	api.Delete("/{id}", "products.destroy", ok, header("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/products/abc", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"group", "route"}, rec.Header().Values("X-Chain"))
}

func TestNamedRouteURL(t *testing.T) {
	r := router.New()
	r.Group("/auth").Group("address").Put("/set-primary/{id}", "address.primary", ok)

	url, err := r.URL("address.primary", map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/auth/address/set-primary/42", url)

	_, err = r.URL("address.primary", nil)
	assert.Error(t, err)

	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}

func TestRoutesTable(t *testing.T) {
	r := router.New()
	r.Post("/tiers", "tiers.store", ok)
	r.Get("/tiers", "tiers.index", ok)
	r.Put("/categories/{id}", "", ok)

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, router.Route{Method: http.MethodPut, Path: "/categories/{id}"}, routes[0])
	assert.Equal(t, http.MethodGet, routes[1].Method)
	assert.Equal(t, "tiers.store", routes[2].Name)
}
