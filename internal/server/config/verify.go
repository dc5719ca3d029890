// Package config defines the server configuration structure.
package config

import (
	"errors"
	"net"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyGuard(&cfg.Guard); err != nil {
		return err
	}
	if err := verifyLimits(&cfg.Limits); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyServer(cfg *ServerSection) error {
	if cfg.Addr == "" {
		return errors.New("server.addr is required")
	}
	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		return errors.New("server.addr must be host:port: " + err.Error())
	}
	if cfg.ReadTimeout < 0 || cfg.WriteTimeout < 0 || cfg.IdleTimeout < 0 {
		return errors.New("server timeouts must not be negative")
	}
	if cfg.ShutdownTimeout < 0 {
		return errors.New("server.shutdown_timeout must not be negative")
	}
	return nil
}

func verifyGuard(cfg *GuardSection) error {
	sources := 0
	if cfg.Secret != "" {
		sources++
	}
	if cfg.SecretFile != "" {
		sources++
	}
	if cfg.SealedSecretFile != "" {
		sources++
	}
	if sources == 0 {
		return errors.New("guard.secret, guard.secret_file, or guard.sealed_secret_file is required")
	}
	if sources > 1 {
		return errors.New("guard.secret, guard.secret_file, and guard.sealed_secret_file are mutually exclusive")
	}

	// Secret length and field name rules are enforced by csrf.New at
	// guard construction.
	if cfg.TTL < 0 {
		return errors.New("guard.ttl must be positive")
	}
	return nil
}

func verifyLimits(cfg *LimitsSection) error {
	if cfg.RatePerIP < 0 {
		return errors.New("limits.rate_per_ip must not be negative")
	}
	if cfg.Burst < 0 {
		return errors.New("limits.burst must not be negative")
	}
	if cfg.RatePerIP > 0 && cfg.Burst == 0 {
		return errors.New("limits.burst is required when limits.rate_per_ip is set")
	}
	if cfg.MaxBodyBytes < 0 {
		return errors.New("limits.max_body_bytes must not be negative")
	}
	if cfg.IdleEviction < 0 {
		return errors.New("limits.idle_eviction must not be negative")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch cfg.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.New("log.level must be one of: debug, info, warn, error")
	}
	switch cfg.Format {
	case "", "json", "text":
	default:
		return errors.New("log.format must be json or text")
	}
	return nil
}
