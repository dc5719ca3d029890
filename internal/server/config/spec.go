// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for formseal-server.
type ServerConfig struct {
	Server    ServerSection    `koanf:"server"`
	Guard     GuardSection     `koanf:"guard"`
	Limits    LimitsSection    `koanf:"limits"`
	Log       LogSection       `koanf:"log"`
	Telemetry TelemetrySection `koanf:"telemetry"`
}

// ServerSection configures the HTTP listener.
type ServerSection struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// TrustProxy enables X-Forwarded-For / X-Real-IP for client identity.
	// Only set behind a proxy that strips inbound values of those headers.
	TrustProxy bool `koanf:"trust_proxy"`

	// WatchConfig logs a restart-required warning when the config file
	// changes on disk. Guard settings never change in-process.
	WatchConfig bool `koanf:"watch_config"`
}

// GuardSection configures token issuance and validation.
//
// Exactly one secret source must be set: Secret, SecretFile, or
// SealedSecretFile.
type GuardSection struct {
	// Secret is the inline HMAC secret.
	Secret string `koanf:"secret"`

	// SecretFile reads the secret from a plain text file.
	SecretFile string `koanf:"secret_file"`

	// SealedSecretFile reads the secret from a file sealed by
	// internal/infra/secretfile. The passphrase comes from the
	// FORMSEAL_SEAL_PASSPHRASE environment variable.
	SealedSecretFile string `koanf:"sealed_secret_file"`

	TokenField string        `koanf:"token_field"`
	TimeField  string        `koanf:"time_field"`
	TTL        time.Duration `koanf:"ttl"`
}

// LimitsSection configures request throttling.
type LimitsSection struct {
	// RatePerIP is the sustained request rate per client IP in
	// requests per second. Zero disables rate limiting.
	RatePerIP float64 `koanf:"rate_per_ip"`

	// Burst is the instantaneous burst allowance per client IP.
	Burst int `koanf:"burst"`

	// MaxBodyBytes caps request body size. Zero disables the cap.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// IdleEviction is how long an idle client's limiter survives
	// before the janitor drops it.
	IdleEviction time.Duration `koanf:"idle_eviction"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// TelemetrySection configures the metrics endpoint.
type TelemetrySection struct {
	Metrics bool `koanf:"metrics"`
}
