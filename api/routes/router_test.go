package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	storefrontsvc "github.com/angelmondragon/storefront-backend/internal/storefront"
	"github.com/angelmondragon/storefront-backend/internal/tenants"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

type handleResolver struct{ handle string }

func (h handleResolver) Resolve(_ context.Context, lookup tenants.Lookup) (*tenants.Resolution, error) {
	if lookup.PathHandle == h.handle || lookup.Host == h.handle+".example.com" {
		return &tenants.Resolution{Tenant: tenants.TenantDTO{ID: uuid.New(), Handle: h.handle}}, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeTenantNotFound, "store not found")
}

type chromeOnly struct{}

func (chromeOnly) Chrome(_ context.Context, res *tenants.Resolution) (*storefrontsvc.Chrome, error) {
	return &storefrontsvc.Chrome{Tenant: res.Tenant}, nil
}

func (chromeOnly) Page(context.Context, *tenants.Resolution, string) (*storefrontsvc.PageView, error) {
	return nil, pkgerrors.New(pkgerrors.CodePageNotFound, "page not found")
}

func testRouter() http.Handler {
	reg := prometheus.NewRegistry()
	metrics.NewStorefrontMetrics(reg).TenantCache(true)
	return NewRouter(Deps{
		Config: &config.Config{
			App: config.AppConfig{Env: "test"},
			JWT: config.JWTConfig{Secret: "secret", Issuer: "test", ExpirationMinutes: 5},
		},
		Logger:     logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Gatherer:   reg,
		Resolver:   handleResolver{handle: "demo"},
		Storefront: chromeOnly{},
	})
}

func TestRouterRoutes(t *testing.T) {
	router := testRouter()
	cases := []struct {
		name   string
		method string
		target string
		host   string
		status int
	}{
		{"live", http.MethodGet, "/health/live", "", http.StatusOK},
		{"ready without deps", http.MethodGet, "/health/ready", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"theme by handle", http.MethodGet, "/api/v1/s/demo/theme", "", http.StatusOK},
		{"theme by host", http.MethodGet, "/api/v1/storefront/theme", "demo.example.com", http.StatusOK},
		{"unknown store", http.MethodGet, "/api/v1/s/nope/theme", "", http.StatusNotFound},
		{"missing page", http.MethodGet, "/api/v1/s/demo/pages/about", "", http.StatusNotFound},
		{"orders need token", http.MethodGet, "/api/v1/orders/" + uuid.NewString(), "", http.StatusUnauthorized},
		{"session auth needs token", http.MethodPost, "/api/v1/s/demo/sessions/" + uuid.NewString() + "/auth", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.target, nil)
		if tc.host != "" {
			req.Host = tc.host
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Fatalf("%s: expected %d got %d", tc.name, tc.status, rec.Code)
		}
	}
}
