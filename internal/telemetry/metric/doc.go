// Package metric provides Prometheus metrics for FormSeal.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry and HTTP handler
//   - collector.go: Scrape-time gauge collectors
//
// Metrics include:
//
//   - Token issuance and validation counters
//   - Validation outcome breakdown by rejection reason
//   - Request latency histograms
//   - Rate limiter counters and registry size
//
// Metrics are exposed at /metrics in Prometheus format.
//
// @req RQ-0403
// @design DS-0402
package metric
