// Package config defines the server configuration structure.
package config

import (
	"time"

	"github.com/yndnr/formseal-go/pkg/csrf"
)

// Default configuration values.
const (
	DefaultAddr            = "127.0.0.1:5080"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	DefaultRatePerIP    = 5.0
	DefaultBurst        = 10
	DefaultMaxBodyBytes = 1 << 20
	DefaultIdleEviction = 3 * time.Minute

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Addr:            DefaultAddr,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Guard: GuardSection{
			TokenField: csrf.DefaultTokenField,
			TimeField:  csrf.DefaultTimeField,
			TTL:        csrf.DefaultTTL,
		},
		Limits: LimitsSection{
			RatePerIP:    DefaultRatePerIP,
			Burst:        DefaultBurst,
			MaxBodyBytes: DefaultMaxBodyBytes,
			IdleEviction: DefaultIdleEviction,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Telemetry: TelemetrySection{
			Metrics: true,
		},
	}
}
