// Package config provides server configuration for FormSeal.
//
// This package defines the server configuration structure and validation:
//
//   - spec.go: ServerConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Business validation (secret sources, address format)
//   - sanitize.go: Log sanitization (hide sensitive values)
//   - resolve.go: Guard secret resolution (inline, file, sealed file)
//
// Configuration is loaded via internal/infra/confloader and supports
// multiple sources: files, environment variables, and flags.
//
// @design DS-0502
package config
