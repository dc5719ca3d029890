// Package config defines the server configuration structure.
package config

import (
	"testing"
	"time"

	"github.com/yndnr/formseal-go/pkg/csrf"
)

func validConfig() *ServerConfig {
	cfg := Default()
	cfg.Guard.Secret = "0123456789abcdef0123456789abcdef0123456789abc"
	return cfg
}

func TestDefault(t *testing.T) {
	cfg := Default()

	// Check server defaults
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Server.ReadTimeout != DefaultReadTimeout {
		t.Errorf("ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, DefaultReadTimeout)
	}
	if cfg.Server.TrustProxy {
		t.Error("TrustProxy should be disabled by default")
	}
	if cfg.Server.WatchConfig {
		t.Error("WatchConfig should be disabled by default")
	}

	// Check guard defaults
	if cfg.Guard.Secret != "" {
		t.Error("Guard.Secret should have no default")
	}
	if cfg.Guard.TokenField != csrf.DefaultTokenField {
		t.Errorf("TokenField = %q, want %q", cfg.Guard.TokenField, csrf.DefaultTokenField)
	}
	if cfg.Guard.TimeField != csrf.DefaultTimeField {
		t.Errorf("TimeField = %q, want %q", cfg.Guard.TimeField, csrf.DefaultTimeField)
	}
	if cfg.Guard.TTL != csrf.DefaultTTL {
		t.Errorf("TTL = %v, want %v", cfg.Guard.TTL, csrf.DefaultTTL)
	}

	// Check limits defaults
	if cfg.Limits.RatePerIP != DefaultRatePerIP {
		t.Errorf("RatePerIP = %v, want %v", cfg.Limits.RatePerIP, DefaultRatePerIP)
	}
	if cfg.Limits.Burst != DefaultBurst {
		t.Errorf("Burst = %d, want %d", cfg.Limits.Burst, DefaultBurst)
	}
	if cfg.Limits.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("MaxBodyBytes = %d, want %d", cfg.Limits.MaxBodyBytes, DefaultMaxBodyBytes)
	}

	// Check log defaults
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, DefaultLogFormat)
	}

	// Metrics are on by default
	if !cfg.Telemetry.Metrics {
		t.Error("Telemetry.Metrics should be enabled by default")
	}
}

func TestSanitize(t *testing.T) {
	cfg := &ServerConfig{
		Guard: GuardSection{
			Secret: "super-secret-key-1234567890",
		},
	}

	sanitized := Sanitize(cfg)

	// Original should be unchanged
	if cfg.Guard.Secret != "super-secret-key-1234567890" {
		t.Error("Original config should not be modified")
	}

	// Sanitized should mask the secret
	if sanitized.Guard.Secret == cfg.Guard.Secret {
		t.Error("Sanitized config should mask the guard secret")
	}

	// Should preserve first 2 and last 2 characters
	if len(sanitized.Guard.Secret) != len(cfg.Guard.Secret) {
		t.Errorf("Masked secret length = %d, want %d", len(sanitized.Guard.Secret), len(cfg.Guard.Secret))
	}
}

func TestSanitize_EmptySecret(t *testing.T) {
	cfg := &ServerConfig{}

	sanitized := Sanitize(cfg)

	if sanitized.Guard.Secret != "" {
		t.Error("Empty secret should remain empty")
	}
}

func TestSanitize_ShortSecret(t *testing.T) {
	cfg := &ServerConfig{
		Guard: GuardSection{
			Secret: "abc",
		},
	}

	sanitized := Sanitize(cfg)

	if sanitized.Guard.Secret != "****" {
		t.Errorf("Short secret should be fully masked, got %q", sanitized.Guard.Secret)
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a", "****"},
		{"ab", "****"},
		{"abc", "****"},
		{"abcd", "****"},
		{"abcde", "ab*de"},
		{"abcdef", "ab**ef"},
		{"1234567890", "12******90"},
	}

	for _, tt := range tests {
		result := maskSecret(tt.input)
		if result != tt.expected {
			t.Errorf("maskSecret(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestVerify_ValidConfig(t *testing.T) {
	if err := Verify(validConfig()); err != nil {
		t.Errorf("Verify failed: %v", err)
	}
}

func TestVerify_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *ServerConfig)
	}{
		{
			name:   "empty addr",
			mutate: func(cfg *ServerConfig) { cfg.Server.Addr = "" },
		},
		{
			name:   "addr without port",
			mutate: func(cfg *ServerConfig) { cfg.Server.Addr = "127.0.0.1" },
		},
		{
			name:   "negative read timeout",
			mutate: func(cfg *ServerConfig) { cfg.Server.ReadTimeout = -time.Second },
		},
		{
			name:   "negative shutdown timeout",
			mutate: func(cfg *ServerConfig) { cfg.Server.ShutdownTimeout = -time.Second },
		},
		{
			name:   "no secret source",
			mutate: func(cfg *ServerConfig) { cfg.Guard.Secret = "" },
		},
		{
			name: "two secret sources",
			mutate: func(cfg *ServerConfig) {
				cfg.Guard.SecretFile = "/etc/formseal/secret"
			},
		},
		{
			name: "all three secret sources",
			mutate: func(cfg *ServerConfig) {
				cfg.Guard.SecretFile = "/etc/formseal/secret"
				cfg.Guard.SealedSecretFile = "/etc/formseal/secret.sealed"
			},
		},
		{
			name:   "negative ttl",
			mutate: func(cfg *ServerConfig) { cfg.Guard.TTL = -time.Minute },
		},
		{
			name:   "negative rate",
			mutate: func(cfg *ServerConfig) { cfg.Limits.RatePerIP = -1 },
		},
		{
			name: "rate without burst",
			mutate: func(cfg *ServerConfig) {
				cfg.Limits.RatePerIP = 5
				cfg.Limits.Burst = 0
			},
		},
		{
			name:   "negative max body",
			mutate: func(cfg *ServerConfig) { cfg.Limits.MaxBodyBytes = -1 },
		},
		{
			name:   "unknown log level",
			mutate: func(cfg *ServerConfig) { cfg.Log.Level = "verbose" },
		},
		{
			name:   "unknown log format",
			mutate: func(cfg *ServerConfig) { cfg.Log.Format = "xml" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := Verify(cfg); err == nil {
				t.Error("Verify() should return error")
			}
		})
	}
}

func TestVerify_RateLimitingDisabled(t *testing.T) {
	cfg := validConfig()
	cfg.Limits.RatePerIP = 0
	cfg.Limits.Burst = 0

	// Zero rate means disabled, so the burst requirement does not apply
	if err := Verify(cfg); err != nil {
		t.Errorf("Verify failed: %v", err)
	}
}

func TestConstants(t *testing.T) {
	// Verify constants are as expected
	if DefaultAddr != "127.0.0.1:5080" {
		t.Errorf("DefaultAddr = %q", DefaultAddr)
	}
	if DefaultLogLevel != "info" {
		t.Errorf("DefaultLogLevel = %q", DefaultLogLevel)
	}
	if DefaultLogFormat != "json" {
		t.Errorf("DefaultLogFormat = %q", DefaultLogFormat)
	}
	if DefaultMaxBodyBytes != 1<<20 {
		t.Errorf("DefaultMaxBodyBytes = %d", DefaultMaxBodyBytes)
	}
}

func TestServerConfig_Struct(t *testing.T) {
	// Test that the struct can be instantiated with all fields
	cfg := ServerConfig{
		Server: ServerSection{
			Addr:            "0.0.0.0:8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			TrustProxy:      true,
			WatchConfig:     true,
		},
		Guard: GuardSection{
			SealedSecretFile: "/etc/formseal/secret.sealed",
			TokenField:       "_token",
			TimeField:        "_time",
			TTL:              30 * time.Minute,
		},
		Limits: LimitsSection{
			RatePerIP:    2.5,
			Burst:        5,
			MaxBodyBytes: 1 << 16,
			IdleEviction: time.Minute,
		},
		Log: LogSection{
			Level:  "debug",
			Format: "text",
		},
		Telemetry: TelemetrySection{
			Metrics: false,
		},
	}

	// Verify struct values
	if cfg.Server.Addr != "0.0.0.0:8080" {
		t.Error("Server addr not set correctly")
	}
	if !cfg.Server.TrustProxy {
		t.Error("TrustProxy should be enabled")
	}
	if cfg.Guard.SealedSecretFile == "" {
		t.Error("SealedSecretFile not set correctly")
	}
	if cfg.Limits.RatePerIP != 2.5 {
		t.Error("RatePerIP not set correctly")
	}
}
