package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/routes"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/fulfillment"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/internal/pages"
	"github.com/angelmondragon/storefront-backend/internal/pages/sections"
	"github.com/angelmondragon/storefront-backend/internal/storefront"
	"github.com/angelmondragon/storefront-backend/internal/tenants"
	"github.com/angelmondragon/storefront-backend/internal/themes"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/instance"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/migrate"
	"github.com/angelmondragon/storefront-backend/pkg/outbox"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "api"

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	deps, err := buildDeps(cfg, logg, dbClient, redisClient, storefrontMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}
	deps.Gatherer = registry

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":         cfg.App.Env,
		"addr":        addr,
		"instance":    instance.GetID(),
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-sigCtx.Done():
		logg.Info(ctx, "api server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
		}
	}
}

func buildDeps(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client, m *metrics.StorefrontMetrics) (routes.Deps, error) {
	conn := dbClient.DB()

	tenantCache, err := tenants.NewRedisCache(redisClient, cfg.Storefront.TenantCacheTTL)
	if err != nil {
		return routes.Deps{}, err
	}
	resolver, err := tenants.NewResolver(tenants.ResolverParams{
		Repository: tenants.NewRepository(conn),
		Cache:      tenantCache,
		BaseDomain: cfg.Storefront.BaseDomain,
		Logger:     logg,
		Metrics:    m,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	catalogSvc, err := catalog.NewService(catalog.NewRepository(conn))
	if err != nil {
		return routes.Deps{}, err
	}
	branchSvc, err := fulfillment.NewService(fulfillment.NewRepository(conn))
	if err != nil {
		return routes.Deps{}, err
	}

	loader, err := themes.NewLoader(themes.NewRepository(conn), cfg.Storefront.DefaultTheme, logg)
	if err != nil {
		return routes.Deps{}, err
	}
	sectionRegistry, err := sections.NewRegistry(catalogSvc)
	if err != nil {
		return routes.Deps{}, err
	}
	composer, err := pages.NewComposer(pages.ComposerParams{
		Repository: pages.NewRepository(conn),
		Registry:   sectionRegistry,
		Logger:     logg,
		Metrics:    m,
	})
	if err != nil {
		return routes.Deps{}, err
	}
	storefrontSvc, err := storefront.NewService(loader, composer)
	if err != nil {
		return routes.Deps{}, err
	}

	ordersSvc, err := orders.NewService(orders.NewRepository(conn), dbClient, outbox.NewService(outbox.NewRepository(conn), logg))
	if err != nil {
		return routes.Deps{}, err
	}

	sessionStore, err := checkout.NewRedisStore(redisClient, cfg.Checkout.SessionTTL, cfg.Checkout.LockTTL)
	if err != nil {
		return routes.Deps{}, err
	}
	checkoutSvc, err := checkout.NewService(checkout.ServiceParams{
		Store:         sessionStore,
		Catalog:       catalogSvc,
		Branches:      branchSvc,
		Orders:        ordersSvc,
		Logger:        logg,
		Metrics:       m,
		SubmitTimeout: cfg.Checkout.SubmitTimeout,
		LockWait:      cfg.Checkout.LockWait,
		RequireAuth:   cfg.Checkout.RequireAuth,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	return routes.Deps{
		Config: cfg,
		Logger: logg,
		Pingers: map[string]controllers.Pinger{
			"database": dbClient,
			"redis":    redisClient,
		},
		Redis:      redisClient,
		Resolver:   resolver,
		Storefront: storefrontSvc,
		Catalog:    catalogSvc,
		Branches:   branchSvc,
		Checkout:   checkoutSvc,
		Orders:     ordersSvc,
	}, nil
}
