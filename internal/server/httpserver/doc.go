// Package httpserver provides the HTTP server for FormSeal.
//
// This package implements the reference integration of the anti-forgery
// guard using stdlib net/http:
//
//   - Form endpoints: / (demo page), /submit, /token
//   - Health endpoints: /health, /ready, /version, /metrics
//
// Features:
//
//   - Middleware chain: Recover, RequestID, RateLimit, Audit, guard
//     protection via csrfhttp.Protect
//   - Per-client token bucket rate limiting with idle bucket eviction
//   - Graceful shutdown with configurable timeout
//   - Prometheus metrics integration
//
// @design DS-0301
package httpserver
