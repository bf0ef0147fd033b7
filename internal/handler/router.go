package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
	"github.com/Raymond9734/smallbiz-crm/internal/ratelimit"
)

// Fixed bodies returned when a limiter tier is exhausted
const (
	generalLimitMessage  = "Too many requests from this IP, please try again later."
	mutatingLimitMessage = "Too many modification requests, please try again later."
	exportLimitMessage   = "Too many export requests, please try again later."
)

// Limiters groups the three rate-limit tiers
type Limiters struct {
	General  *ratelimit.Limiter
	Mutating *ratelimit.Limiter
	Export   *ratelimit.Limiter
	// SkipLocalhost exempts loopback clients from the general and mutating tiers.
	SkipLocalhost bool
}

// RouterConfig holds everything NewRouter wires together
type RouterConfig struct {
	Prefix         string
	AllowedOrigins []string
	// TrustedProxies may set the client address through forwarding headers.
	TrustedProxies ratelimit.TrustedProxies
	Limiters       Limiters
	Customers      *CustomerHandler
	Orders         *OrderHandler
	Followups      *FollowupHandler
	Health         *HealthHandler
	Errors         *ErrorHandler
	Logger         *slog.Logger
}

// NewRouter builds the HTTP handler for the whole API
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(ratelimit.RealIP(cfg.TrustedProxies))
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(RecoveryMiddleware(cfg.Errors))
	r.Use(SecurityHeadersMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{"Content-Disposition", RequestIDHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	// Probes outside the prefix skip rate limiting.
	r.Get("/health", cfg.Health.Health)

	var skip func(*http.Request) bool
	if cfg.Limiters.SkipLocalhost {
		skip = ratelimit.IsLoopback
	}
	general := limit(cfg.Limiters.General, generalLimitMessage, skip, cfg.Errors)
	mutating := limit(cfg.Limiters.Mutating, mutatingLimitMessage, skip, cfg.Errors)
	exports := limit(cfg.Limiters.Export, exportLimitMessage, nil, cfg.Errors)

	r.Route(cfg.Prefix, func(r chi.Router) {
		r.Use(general)

		r.Get("/health", cfg.Health.Health)

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", cfg.Customers.ListCustomers)
			r.Get("/{id}", cfg.Customers.GetCustomer)
			r.With(mutating).Post("/", cfg.Customers.CreateCustomer)
			r.With(mutating).Put("/{id}", cfg.Customers.UpdateCustomer)
			r.With(mutating).Delete("/{id}", cfg.Customers.DeleteCustomer)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", cfg.Orders.ListOrders)
			r.Get("/customer/{customerId}", cfg.Orders.ListCustomerOrders)
			r.With(mutating).Post("/", cfg.Orders.CreateOrder)
		})

		r.Route("/followups", func(r chi.Router) {
			r.Get("/", cfg.Followups.ListFollowups)
			r.With(exports).Get("/export", cfg.Followups.ExportCustomers)
			r.With(mutating).Post("/", cfg.Followups.CreateFollowup)
			r.With(mutating).Patch("/{id}/complete", cfg.Followups.CompleteFollowup)
		})
	})

	return r
}

// limit wraps a limiter tier. A nil limiter disables the tier. Store
// failures are logged and the request is let through uncounted.
func limit(l *ratelimit.Limiter, message string, skip func(*http.Request) bool, errs *ErrorHandler) func(http.Handler) http.Handler {
	if l == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	return ratelimit.Middleware(l, ratelimit.MiddlewareConfig{
		Skip: skip,
		OnLimited: func(w http.ResponseWriter, r *http.Request, _ *ratelimit.Result) {
			respondError(w, http.StatusTooManyRequests, models.CodeRateLimited, message)
		},
		OnError: func(w http.ResponseWriter, r *http.Request, err error) {
			errs.logger.Warn("rate limit store unavailable",
				slog.String("limiter", l.Name()),
				slog.String("error", err.Error()),
			)
		},
		FailOpen: true,
	})
}
