// Package main provides the entry point for formseal-cli.
//
// The CLI tool works offline against the same token math the server
// runs:
//
//   - Token operations (issue, verify, inspect)
//   - Secret management (generate, derive, seal, open, fingerprint)
//
// Usage:
//
//	formseal-cli [command] [flags]
//	formseal-cli token issue --secret "$FORMSEAL_SECRET" --addr 203.0.113.9:4711
//	formseal-cli secret generate --output json
//
// Commands never contact a server; verification runs the validation
// pipeline locally against the provided secret.
//
// @design DS-0601
package main
