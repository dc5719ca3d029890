// Package metric provides Prometheus metrics for FormSeal.
//
// It exposes metrics in Prometheus format for monitoring token
// issuance, validation outcomes, request rates, and latencies.
package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "formseal"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Token metrics
	TokensIssued       prometheus.Counter
	TokenValidations   *prometheus.CounterVec
	ValidationDuration prometheus.Histogram

	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Limit metrics
	RateLimited prometheus.Counter
}

// NewRegistry creates a registry with all application metrics
// registered, plus the standard Go and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.TokensIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "token",
		Name:      "issued_total",
		Help:      "Total tokens issued",
	})

	r.TokenValidations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "token",
		Name:      "validations_total",
		Help:      "Token validation outcomes by rejection reason",
	}, []string{"outcome", "reason"})

	r.ValidationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "token",
		Name:      "validation_duration_seconds",
		Help:      "Time spent validating a token",
		Buckets:   []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
	})

	r.RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, path, and status",
	}, []string{"method", "path", "status"})

	r.RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	r.RateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the per-client rate limiter",
	})

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.TokensIssued,
		r.TokenValidations,
		r.ValidationDuration,
		r.RequestsTotal,
		r.RequestDuration,
		r.RateLimited,
	)

	return r
}

// MustRegister registers additional collectors with the registry.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.registry.MustRegister(cs...)
}

// Handler returns an HTTP handler serving this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordTokenIssued counts an issued token.
func (r *Registry) RecordTokenIssued() {
	r.TokensIssued.Inc()
}

// RecordValidation counts a validation outcome. reason is empty for
// accepted tokens.
func (r *Registry) RecordValidation(outcome, reason string) {
	r.TokenValidations.WithLabelValues(outcome, reason).Inc()
}

// ObserveValidation records the duration of one validation.
func (r *Registry) ObserveValidation(seconds float64) {
	r.ValidationDuration.Observe(seconds)
}

// RecordRequest counts a handled HTTP request.
func (r *Registry) RecordRequest(method, path, status string) {
	r.RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// ObserveRequestDuration records the latency of one HTTP request.
func (r *Registry) ObserveRequestDuration(method, path string, seconds float64) {
	r.RequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// RecordRateLimited counts a rate-limited request.
func (r *Registry) RecordRateLimited() {
	r.RateLimited.Inc()
}

var (
	globalOnce sync.Once
	global     *Registry
)

// Global returns the process-wide registry.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
	})
	return global
}

// Handler returns an HTTP handler for the global registry.
func Handler() http.Handler {
	return Global().Handler()
}
