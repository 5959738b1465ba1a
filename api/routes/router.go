package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayoubseh/boutique-backend/api/controllers"
	"github.com/ayoubseh/boutique-backend/api/middleware"
	"github.com/ayoubseh/boutique-backend/internal/auth"
	"github.com/ayoubseh/boutique-backend/internal/cart"
	"github.com/ayoubseh/boutique-backend/internal/catalog"
	checkoutsvc "github.com/ayoubseh/boutique-backend/internal/checkout"
	"github.com/ayoubseh/boutique-backend/internal/orders"
	"github.com/ayoubseh/boutique-backend/pkg/auth/session"
	"github.com/ayoubseh/boutique-backend/pkg/config"
	"github.com/ayoubseh/boutique-backend/pkg/db"
	"github.com/ayoubseh/boutique-backend/pkg/logger"
	"github.com/ayoubseh/boutique-backend/pkg/metrics"
	"github.com/ayoubseh/boutique-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs. Optional fields may be
// nil; the router degrades gracefully (no rate limiting without Redis, no
// /metrics without a handler).
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	AuthService    auth.Service
	CatalogService catalog.Service
	CartRegistry   *cart.Registry
	CheckoutSvc    checkoutsvc.Service
	OrdersService  orders.Service
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	var redisPinger interface {
		Ping(ctx context.Context) error
	}
	if deps.Redis != nil {
		redisPinger = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	loginLimiter := passthrough
	registerLimiter := passthrough
	if deps.Redis != nil {
		loginPolicy := middleware.NewAuthRateLimitPolicy(
			"login",
			cfg.AuthRateLimit.LoginWindow,
			cfg.AuthRateLimit.LoginIPLimit,
			cfg.AuthRateLimit.LoginEmailLimit,
		)
		registerPolicy := middleware.NewAuthRateLimitPolicy(
			"register",
			cfg.AuthRateLimit.RegisterWindow,
			cfg.AuthRateLimit.RegisterIPLimit,
			cfg.AuthRateLimit.RegisterEmailLimit,
		)
		loginLimiter = middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)
		registerLimiter = middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)
	}

	cartSession := middleware.CartSession(nil, 0, logg)
	if deps.Redis != nil {
		cartSession = middleware.CartSession(deps.Redis, cfg.Cart.SessionIdleTTL, logg)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(registerLimiter).Post("/register", controllers.AuthRegister(deps.AuthService, logg))
			r.With(loginLimiter).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
			r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
			r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
				r.Get("/me", controllers.AuthMe(deps.AuthService, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.CatalogService, logg))
			r.Get("/{productId}", controllers.ProductDetail(deps.CatalogService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(cartSession)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.CartRegistry, logg))
				r.Delete("/", controllers.CartClear(deps.CartRegistry, logg))
				r.Post("/items", controllers.CartAddItem(deps.CartRegistry, deps.CatalogService, logg))
				r.Patch("/items/{productId}", controllers.CartUpdateItem(deps.CartRegistry, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.CartRegistry, logg))
			})

			r.With(middleware.OptionalAuth(cfg.JWT, deps.SessionChecker, logg)).
				Post("/checkout", controllers.Checkout(deps.CheckoutSvc, deps.CartRegistry, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
			r.Get("/", controllers.OrderList(deps.OrdersService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(deps.OrdersService, logg))
		})
	})

	return r
}

func passthrough(next http.Handler) http.Handler { return next }
