package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/sweetshop-backend/api/controllers"
	"github.com/angelmondragon/sweetshop-backend/api/middleware"
	"github.com/angelmondragon/sweetshop-backend/internal/auth"
	"github.com/angelmondragon/sweetshop-backend/internal/catalog"
	"github.com/angelmondragon/sweetshop-backend/internal/shopstate"
	"github.com/angelmondragon/sweetshop-backend/internal/sweets"
	"github.com/angelmondragon/sweetshop-backend/pkg/auth/session"
	"github.com/angelmondragon/sweetshop-backend/pkg/config"
	"github.com/angelmondragon/sweetshop-backend/pkg/logger"
	"github.com/angelmondragon/sweetshop-backend/pkg/metrics"
)

// RateLimitStore counts auth attempts. Leave it nil to disable throttling.
type RateLimitStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Deps bundles what the HTTP surface is wired to.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DB    controllers.Pinger
	Redis controllers.Pinger

	Sessions    session.AccessSessionChecker
	RateLimiter RateLimitStore

	Source     catalog.Source
	Resolver   controllers.CatalogResolver
	Categories *catalog.CategoryLoader

	Auth   auth.Service
	Sweets sweets.Service
	Shop   *shopstate.Service

	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Logging(logg, d.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUserLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		0,
	)

	health := map[string]controllers.Pinger{"db": d.DB}
	if cfg.Redis.Enabled {
		health["redis"] = d.Redis
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, health))
	})

	if d.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", d.MetricsHandler)
	}

	requireAuth := middleware.Auth(cfg.JWT, d.Sessions, logg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, d.RateLimiter, logg)).Post("/login", controllers.AuthLogin(d.Auth, logg))
			r.With(middleware.AuthRateLimit(registerPolicy, d.RateLimiter, logg)).Post("/register", controllers.AuthRegister(d.Auth, logg))
			r.With(requireAuth).Post("/logout", controllers.AuthLogout(d.Auth, logg))
		})

		r.Route("/sweets", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(d.Resolver, logg))
			r.Get("/raw", controllers.CatalogRaw(d.Source, logg))
			r.Get("/{id}", controllers.CatalogGet(d.Source, logg))
			r.With(requireAuth).Post("/{id}/purchase", controllers.SweetPurchase(d.Sweets, logg))
		})

		r.Get("/categories", controllers.Categories(d.Source, logg))
		r.Get("/categories/options", controllers.CategoryOptions(d.Categories))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", controllers.AuthMe(d.Auth, logg))

			r.Route("/shop", func(r chi.Router) {
				r.Get("/", controllers.ShopView(d.Shop, logg))
				r.Post("/cart", controllers.ShopAddToCart(d.Shop, logg))
				r.Delete("/cart/{id}", controllers.ShopRemoveFromCart(d.Shop, logg))
				r.Post("/wishlist/{id}/toggle", controllers.ShopToggleWishlist(d.Shop, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(requireAuth, middleware.RequireAdmin(logg))
		r.Route("/sweets", func(r chi.Router) {
			r.Get("/", controllers.AdminSweetList(d.Sweets, logg))
			r.Post("/", controllers.AdminSweetCreate(d.Sweets, logg))
			r.Patch("/{id}", controllers.AdminSweetUpdate(d.Sweets, logg))
			r.Delete("/{id}", controllers.AdminSweetDelete(d.Sweets, logg))
			r.Post("/{id}/restock", controllers.AdminSweetRestock(d.Sweets, logg))
		})
	})

	return r
}
