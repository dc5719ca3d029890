// Package main provides the entry point for formseal-server.
//
// The server hosts the FormSeal demo form and token endpoints behind
// the full protection chain:
//
//   - Anti-forgery token issuance and validation on form routes
//   - Per-client rate limiting with idle bucket eviction
//   - Audit logging with request IDs
//   - Prometheus metrics on /metrics (when enabled)
//
// Usage:
//
//	formseal-server [flags]
//	formseal-server --config /path/to/config.yaml
//
// Configuration merges defaults, the optional config file, and
// FORMSEAL_* environment variables. The signing secret comes from an
// inline value, a plain file, or a sealed file plus the
// FORMSEAL_SEAL_PASSPHRASE environment variable.
//
// @design DS-0501
package main
