// Package handler provides HTTP request handlers for FormSeal.
//
// This package contains handlers for all HTTP endpoints:
//
//   - form.go: demo form page and the protected submit route
//   - token.go: out-of-band token issuance
//   - health.go: health and readiness checks
//   - version.go: build information
//
// All handlers follow a consistent pattern:
//
//   - Read what the guard middleware put in the request context
//   - Format and return the response envelope
//
// The handlers never touch the guard directly; issuance and validation
// flow through the csrfhttp middleware mounted by the router.
//
// @design DS-0301
package handler
