// Package httpserver provides the HTTP server for FormSeal.
package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/yndnr/formseal-go/internal/server/httpserver/handler"
	"github.com/yndnr/formseal-go/internal/telemetry/metric"
	"github.com/yndnr/formseal-go/pkg/csrf"
	"github.com/yndnr/formseal-go/pkg/csrfhttp"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Guard validates and issues anti-forgery tokens for the form routes.
	Guard *csrf.Guard

	// Logger for request logging.
	Logger *slog.Logger

	// Metrics receives request and validation measurements. Nil disables
	// instrumentation and the /metrics route.
	Metrics *metric.Registry

	// TrustProxy resolves client addresses from forwarding headers.
	TrustProxy bool

	// RatePerIP is the per-client rate limit (requests/second).
	// Zero disables rate limiting.
	RatePerIP float64

	// Burst is the instantaneous burst allowed per client.
	Burst int

	// MaxBodyBytes caps the request body size on form routes.
	// Zero disables the cap.
	MaxBodyBytes int64

	// IdleEviction is how long idle rate limit buckets survive.
	IdleEviction time.Duration
}

// Router is the assembled handler chain, bundling the components that
// need teardown with the routes.
type Router struct {
	http.Handler

	limiter *RateLimiter
}

// Close releases the router's background resources.
func (rt *Router) Close() {
	if rt.limiter != nil {
		rt.limiter.Close()
	}
}

// NewRouter creates and configures the HTTP router with all routes and
// middleware.
func NewRouter(cfg *RouterConfig) *Router {
	h := handler.New(cfg.Logger, cfg.Metrics)

	var limiter *RateLimiter
	if cfg.RatePerIP > 0 {
		limiter = NewRateLimiter(&RateLimiterConfig{
			RatePerIP:    cfg.RatePerIP,
			Burst:        cfg.Burst,
			IdleEviction: cfg.IdleEviction,
			TrustProxy:   cfg.TrustProxy,
			Logger:       cfg.Logger,
			Metrics:      cfg.Metrics,
		})

		if cfg.Metrics != nil {
			cfg.Metrics.MustRegister(metric.NewGaugeCollector("http", "rate_limit_buckets",
				"Client buckets currently tracked by the rate limiter",
				func() float64 { return float64(limiter.Active()) }))
		}
	}

	protect := csrfhttp.Protect(cfg.Guard,
		csrfhttp.WithTrustProxy(cfg.TrustProxy),
		csrfhttp.WithObserver(validationObserver(cfg.Metrics)),
	)

	// Form routes carry the full chain.
	// Order: Recover -> RequestID -> RateLimit -> Audit -> MaxBody -> Protect
	formMiddlewares := []Middleware{Recover(cfg.Logger), RequestID()}
	if limiter != nil {
		formMiddlewares = append(formMiddlewares, limiter.Middleware())
	}
	formMiddlewares = append(formMiddlewares, Audit(cfg.Logger, cfg.Metrics, cfg.TrustProxy))
	if cfg.MaxBodyBytes > 0 {
		formMiddlewares = append(formMiddlewares, MaxBody(cfg.MaxBodyBytes))
	}
	formMiddlewares = append(formMiddlewares, protect)
	formHandler := Chain(h, formMiddlewares...)

	// Create the top-level mux for routing
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", formHandler)
	mux.Handle("POST /submit", formHandler)
	mux.Handle("GET /token", formHandler)

	// Operational endpoints - audited but never rate limited or guarded
	opsHandler := Chain(h, Recover(cfg.Logger), RequestID(), Audit(cfg.Logger, cfg.Metrics, cfg.TrustProxy))
	mux.Handle("GET /health", opsHandler)
	mux.Handle("GET /ready", opsHandler)
	mux.Handle("GET /version", opsHandler)

	// Metrics endpoint - kept out of its own measurements
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", Chain(cfg.Metrics.Handler(), Recover(cfg.Logger), RequestID()))
	}

	return &Router{Handler: mux, limiter: limiter}
}

// validationObserver feeds guard outcomes into the metrics registry.
// Returns nil when there is no registry.
func validationObserver(m *metric.Registry) csrfhttp.Observer {
	if m == nil {
		return nil
	}
	return func(err error, elapsed time.Duration) {
		m.ObserveValidation(elapsed.Seconds())
		if err != nil {
			m.RecordValidation("rejected", string(csrf.ReasonOf(err)))
			return
		}
		m.RecordValidation("accepted", "")
	}
}

// DefaultRouterConfig returns default router configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		RatePerIP:    5,
		Burst:        10,
		MaxBodyBytes: 1 << 20,
		IdleEviction: 3 * time.Minute,
	}
}
