// Package httpserver provides the HTTP server for FormSeal.
package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/formseal-go/internal/telemetry/logger"
	"github.com/yndnr/formseal-go/internal/telemetry/metric"
	"github.com/yndnr/formseal-go/pkg/cmap"
	"github.com/yndnr/formseal-go/pkg/csrfhttp"
)

// Context keys for request-scoped values.
type contextKey string

const (
	// ContextKeyRequestID is the context key for request ID.
	ContextKeyRequestID contextKey = "request_id"

	// ContextKeyStartTime is the context key for request start time.
	ContextKeyStartTime contextKey = "start_time"
)

// Middleware wraps an http.Handler with additional functionality.
type Middleware func(http.Handler) http.Handler

// Chain chains multiple middlewares together.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// RequestID adds a unique request ID to each request.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Check for existing request ID in header
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = "req-" + strings.ToLower(ulid.Make().String())
			}

			// Add to response header
			w.Header().Set("X-Request-ID", requestID)

			// Add to request context, and to the logger context so
			// handlers can echo the ID without reaching back here.
			ctx := context.WithValue(r.Context(), ContextKeyRequestID, requestID)
			ctx = context.WithValue(ctx, ContextKeyStartTime, time.Now())
			ctx = logger.WithRequestID(ctx, requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimiterConfig holds configuration for the per-client rate limiter.
type RateLimiterConfig struct {
	// RatePerIP is the sustained request rate allowed per client address
	// (requests/second).
	RatePerIP float64

	// Burst is the instantaneous burst allowed per client address.
	Burst int

	// IdleEviction is how long an idle client's bucket survives before
	// the janitor removes it. Zero disables eviction.
	IdleEviction time.Duration

	// TrustProxy resolves client addresses from forwarding headers.
	TrustProxy bool

	// Logger for eviction diagnostics.
	Logger *slog.Logger

	// Metrics counts rejected requests. May be nil.
	Metrics *metric.Registry
}

// RateLimiter applies a token bucket limit per client address. Buckets
// live in a sharded map; a janitor goroutine evicts buckets that have
// seen no traffic for IdleEviction.
type RateLimiter struct {
	ratePerIP  rate.Limit
	burst      int
	trustProxy bool
	logger     *slog.Logger
	metrics    *metric.Registry

	visitors *cmap.Map[*visitor]
	stop     chan struct{}
	stopOnce sync.Once
}

// visitor pairs a client's bucket with its last activity, read by the
// eviction sweep.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // Unix nanoseconds
}

// NewRateLimiter creates a rate limiter and starts its eviction janitor
// when IdleEviction is set. Call Close to stop the janitor.
func NewRateLimiter(cfg *RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		ratePerIP:  rate.Limit(cfg.RatePerIP),
		burst:      cfg.Burst,
		trustProxy: cfg.TrustProxy,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		visitors:   cmap.New[*visitor](),
		stop:       make(chan struct{}),
	}

	if cfg.IdleEviction > 0 {
		go rl.evictLoop(cfg.IdleEviction)
	}

	return rl
}

// Middleware returns the enforcement middleware.
func (rl *RateLimiter) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr := csrfhttp.ClientAddr(r, rl.trustProxy)
			if !rl.allow(addr) {
				if rl.metrics != nil {
					rl.metrics.RecordRateLimited()
				}
				w.Header().Set("Retry-After", "1")
				writeError(w, "FS-SYS-4290", "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// allow charges one request against addr's bucket, creating the bucket
// on first sight.
func (rl *RateLimiter) allow(addr string) bool {
	v, _ := rl.visitors.GetOrCompute(addr, func() *visitor {
		return &visitor{limiter: rate.NewLimiter(rl.ratePerIP, rl.burst)}
	})
	v.lastSeen.Store(time.Now().UnixNano())
	return v.limiter.Allow()
}

// Active returns the number of client buckets currently tracked.
func (rl *RateLimiter) Active() int {
	return rl.visitors.Len()
}

// Close stops the eviction janitor. Safe to call more than once.
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) evictLoop(idle time.Duration) {
	ticker := time.NewTicker(idle)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-idle).UnixNano()
			evicted := rl.visitors.DeleteFunc(func(_ string, v *visitor) bool {
				return v.lastSeen.Load() < cutoff
			})
			if evicted > 0 && rl.logger != nil {
				rl.logger.Debug("evicted idle rate limit buckets", "count", evicted)
			}
		case <-rl.stop:
			return
		}
	}
}

// Audit logs request/response for audit trail and feeds the request
// metrics.
func Audit(logger *slog.Logger, metrics *metric.Registry, trustProxy bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Wrap response writer to capture status code
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			// Execute handler
			next.ServeHTTP(wrapped, r)

			// Get context values
			requestID, _ := r.Context().Value(ContextKeyRequestID).(string)
			startTime, _ := r.Context().Value(ContextKeyStartTime).(time.Time)

			// Calculate duration
			duration := time.Since(startTime)

			if metrics != nil {
				// The matched route pattern keeps the path label set
				// bounded; unmatched requests share one bucket.
				path := r.Pattern
				if path == "" {
					path = "unmatched"
				}
				metrics.RecordRequest(r.Method, path, strconv.Itoa(wrapped.statusCode))
				metrics.ObserveRequestDuration(r.Method, path, duration.Seconds())
			}

			// Build log attributes
			attrs := []any{
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration_ms", duration.Milliseconds(),
				"client_ip", csrfhttp.ClientAddr(r, trustProxy),
			}

			// Log based on status code
			if wrapped.statusCode >= 500 {
				logger.Error("request completed with error", attrs...)
			} else if wrapped.statusCode >= 400 {
				logger.Warn("request completed with client error", attrs...)
			} else {
				logger.Info("request completed", attrs...)
			}
		})
	}
}

// Recover recovers from panics and returns 500 error.
func Recover(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					requestID, _ := r.Context().Value(ContextKeyRequestID).(string)
					logger.Error("panic recovered",
						"request_id", requestID,
						"error", err,
						"path", r.URL.Path,
					)

					w.Header().Set("Content-Type", "application/json")
					w.Header().Set("X-Error-Code", "FS-SYS-5000")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"code":    "FS-SYS-5000",
						"message": "internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// MaxBody caps the request body size. An oversized submission fails the
// form parse downstream, so the guard rejects it without buffering the
// whole body.
func MaxBody(limit int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// GetRequestIDFromContext retrieves the request ID from context.
func GetRequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// writeError writes a bare JSON error response, for rejections that
// happen before a handler runs.
func writeError(w http.ResponseWriter, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)

	status := http.StatusInternalServerError
	switch {
	case strings.HasSuffix(code, "-4290"):
		status = http.StatusTooManyRequests
	case strings.HasSuffix(code, "-4000"):
		status = http.StatusBadRequest
	}

	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
}
