package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	ordercontrollers "github.com/angelmondragon/storefront-backend/api/controllers/orders"
	sessioncontrollers "github.com/angelmondragon/storefront-backend/api/controllers/sessions"
	storefrontcontrollers "github.com/angelmondragon/storefront-backend/api/controllers/storefront"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	checkoutsvc "github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/fulfillment"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	storefrontsvc "github.com/angelmondragon/storefront-backend/internal/storefront"
	"github.com/angelmondragon/storefront-backend/internal/tenants"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/storefront-backend/pkg/redis"
)

// RedisStore is the redis surface used by request middleware.
type RedisStore interface {
	pkgredis.IdempotencyStore
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	RateLimitKey(scope string) string
}

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	Pingers    map[string]controllers.Pinger
	Redis      RedisStore
	Gatherer   prometheus.Gatherer
	Resolver   tenants.Resolver
	Storefront storefrontsvc.Service
	Catalog    catalog.Service
	Branches   fulfillment.Service
	Checkout   checkoutsvc.Service
	Orders     orders.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.Storefront.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Pingers))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/storefront", func(r chi.Router) {
		r.Use(middleware.ResolveTenant(deps.Resolver, "", logg))
		mountStorefront(r, deps)
	})

	r.Route("/api/v1/s/{handle}", func(r chi.Router) {
		r.Use(middleware.ResolveTenant(deps.Resolver, "handle", logg))
		mountStorefront(r, deps)
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireStaff(logg))
		r.Get("/{orderId}", ordercontrollers.Detail(deps.Orders, logg))
		r.Post("/{orderId}/status", ordercontrollers.UpdateStatus(deps.Orders, logg))
	})

	return r
}

func mountStorefront(r chi.Router, deps Deps) {
	cfg := deps.Config
	logg := deps.Logger

	r.Get("/", storefrontcontrollers.Home(deps.Storefront, logg))
	r.Get("/theme", storefrontcontrollers.Theme(deps.Storefront, logg))
	r.Get("/pages/{slug}", storefrontcontrollers.Page(deps.Storefront, logg))
	r.Get("/products/{productId}", storefrontcontrollers.ProductDetail(deps.Catalog, logg))
	r.Get("/categories", storefrontcontrollers.Categories(deps.Catalog, logg))
	r.Get("/categories/{categorySlug}/products", storefrontcontrollers.CategoryProducts(deps.Catalog, logg))
	r.Get("/branches", storefrontcontrollers.Branches(deps.Branches, logg))

	idempotent := middleware.Idempotency(deps.Redis, cfg.Checkout.IdempotencyTTL, logg)
	sessionLimit := middleware.RateLimitPolicy{
		Name:   "sessions",
		Window: cfg.Checkout.SessionRateWindow,
		Limit:  cfg.Checkout.SessionRateLimit,
	}

	r.Route("/sessions", func(r chi.Router) {
		r.With(middleware.RateLimit(sessionLimit, deps.Redis, logg), idempotent).Post("/", sessioncontrollers.Create(deps.Checkout, logg))

		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", sessioncontrollers.Get(deps.Checkout, logg))
			r.With(idempotent).Post("/items", sessioncontrollers.AddItem(deps.Checkout, logg))
			r.Patch("/items/{itemId}", sessioncontrollers.UpdateItem(deps.Checkout, logg))
			r.Delete("/items/{itemId}", sessioncontrollers.RemoveItem(deps.Checkout, logg))
			r.Put("/fulfillment", sessioncontrollers.SetFulfillment(deps.Checkout, logg))
			r.Post("/review", sessioncontrollers.OpenCart(deps.Checkout, logg))
			r.Post("/browse", sessioncontrollers.ContinueShopping(deps.Checkout, logg))
			r.Post("/checkout", sessioncontrollers.BeginCheckout(deps.Checkout, logg))
			r.With(middleware.Auth(cfg.JWT, logg)).Post("/auth", sessioncontrollers.CompleteAuth(deps.Checkout, logg))
			r.Post("/orders", sessioncontrollers.PlaceOrder(deps.Checkout, logg))
			r.Post("/orders/refresh", sessioncontrollers.RefreshOrderStatus(deps.Checkout, logg))
		})
	})
}
