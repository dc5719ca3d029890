// Package logger provides structured logging for FormSeal.
//
// This package wraps log/slog for structured logging:
//
//   - logger.go: Logger configuration and initialization
//   - context.go: Context-aware logging with request IDs
//   - redact.go: Sensitive data redaction
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering with runtime adjustment
//   - Automatic masking of token digests and secret-bearing keys
//   - Context propagation for per-request loggers
//
// @req RQ-0403
// @design DS-0402
package logger
