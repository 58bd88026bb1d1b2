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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/sweetshop-backend/api/routes"
	"github.com/angelmondragon/sweetshop-backend/internal/auth"
	"github.com/angelmondragon/sweetshop-backend/internal/catalog"
	"github.com/angelmondragon/sweetshop-backend/internal/shopstate"
	"github.com/angelmondragon/sweetshop-backend/internal/sweets"
	"github.com/angelmondragon/sweetshop-backend/pkg/auth/session"
	"github.com/angelmondragon/sweetshop-backend/pkg/config"
	"github.com/angelmondragon/sweetshop-backend/pkg/db"
	"github.com/angelmondragon/sweetshop-backend/pkg/instance"
	"github.com/angelmondragon/sweetshop-backend/pkg/logger"
	"github.com/angelmondragon/sweetshop-backend/pkg/metrics"
	"github.com/angelmondragon/sweetshop-backend/pkg/migrate"
	"github.com/angelmondragon/sweetshop-backend/pkg/redis"
)

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

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	deps := routes.Deps{Config: cfg, Logger: logg, DB: dbClient}

	var (
		sessionManager *session.Manager
		shopStore      shopstate.Store
	)
	if cfg.Redis.Enabled {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()

		sessionManager, err = session.NewManager(redisClient, cfg.JWT)
		if err != nil {
			logg.Error(ctx, "failed to create session manager", err)
			os.Exit(1)
		}
		shopStore, err = shopstate.NewRedisStore(redisClient)
		if err != nil {
			logg.Error(ctx, "failed to create shopper state store", err)
			os.Exit(1)
		}
		deps.Redis = redisClient
		deps.RateLimiter = redisClient
	} else {
		logg.Warn(ctx, "redis disabled: sessions and carts are process-local, auth rate limiting is off")
		sessionManager, err = session.NewMemoryManager(cfg.JWT)
		if err != nil {
			logg.Error(ctx, "failed to create session manager", err)
			os.Exit(1)
		}
		shopStore = shopstate.NewMemoryStore()
	}
	deps.Sessions = sessionManager

	reg := prometheus.NewRegistry()
	if cfg.FeatureFlags.Metrics {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		deps.HTTPMetrics = metrics.NewHTTPMetrics(reg)
		deps.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}
	var catalogMetrics *metrics.CatalogMetrics
	if cfg.FeatureFlags.Metrics {
		catalogMetrics = metrics.NewCatalogMetrics(reg)
	}

	repo := sweets.NewRepository(dbClient.DB())
	source, closeSource, err := buildCatalogSource(cfg.Catalog, repo)
	if err != nil {
		logg.Error(ctx, "failed to create catalog source", err)
		os.Exit(1)
	}
	defer closeSource()

	resolver, err := catalog.NewResolver(catalog.ResolverParams{Source: source, Logger: logg, Metrics: catalogMetrics})
	if err != nil {
		logg.Error(ctx, "failed to create catalog resolver", err)
		os.Exit(1)
	}
	loader, err := catalog.NewCategoryLoader(source, logg)
	if err != nil {
		logg.Error(ctx, "failed to create category loader", err)
		os.Exit(1)
	}
	deps.Source = source
	deps.Resolver = resolver
	deps.Categories = loader

	sweetService, err := sweets.NewService(repo, dbClient)
	if err != nil {
		logg.Error(ctx, "failed to create sweets service", err)
		os.Exit(1)
	}
	deps.Sweets = sweetService

	authService, err := auth.NewService(auth.ServiceParams{
		DB:             dbClient,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}
	deps.Auth = authService

	if cfg.Admin.Enabled() {
		seedAdmin(ctx, logg, authService, cfg.Admin)
	}

	shopService, err := shopstate.NewService(shopStore, source)
	if err != nil {
		logg.Error(ctx, "failed to create shop service", err)
		os.Exit(1)
	}
	deps.Shop = shopService

	addr := ":" + cfg.App.Port
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	serverCtx := logg.WithFields(ctx, map[string]any{
		"env":            cfg.App.Env,
		"addr":           addr,
		"instance":       instance.GetID(),
		"catalog_source": source.Name(),
	})
	logg.Info(serverCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(serverCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(serverCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(serverCtx, "graceful shutdown failed", err)
		}
	}
}

func seedAdmin(ctx context.Context, logg *logger.Logger, svc auth.Service, cfg config.AdminConfig) {
	user, created, err := svc.EnsureAdmin(ctx, auth.AdminSeed{
		Username: cfg.Username,
		Email:    cfg.Email,
		Password: cfg.Password,
	})
	if err != nil {
		logg.Error(ctx, "failed to seed admin user", err)
		os.Exit(1)
	}
	ctx = logg.WithFields(ctx, map[string]any{"username": user.Username, "created": created})
	logg.Info(ctx, "admin user ensured")
}
