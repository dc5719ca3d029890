// Package main provides the entry point for formseal-server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/yndnr/formseal-go/internal/infra/buildinfo"
	"github.com/yndnr/formseal-go/internal/infra/confloader"
	"github.com/yndnr/formseal-go/internal/infra/shutdown"
	"github.com/yndnr/formseal-go/internal/server/config"
	"github.com/yndnr/formseal-go/internal/server/httpserver"
	"github.com/yndnr/formseal-go/internal/telemetry/logger"
	"github.com/yndnr/formseal-go/internal/telemetry/metric"
	"github.com/yndnr/formseal-go/pkg/csrf"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse command line flags
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	info := buildinfo.Get()

	// Show version and exit
	if *showVersion {
		fmt.Printf("formseal-server %s (commit: %s, built: %s)\n", info.Version, info.Commit, info.BuildTime)
		return nil
	}

	// Load configuration
	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Initialize logger
	log, slogLogger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting formseal-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", *configFile)
	log.Debug("effective configuration", "config", fmt.Sprintf("%+v", *config.Sanitize(cfg)))

	// Build the guard from the configured secret source
	guardCfg, err := config.ToGuardConfig(&cfg.Guard, nil)
	if err != nil {
		return fmt.Errorf("resolve guard secret: %w", err)
	}
	guard, err := csrf.New(guardCfg)
	if err != nil {
		return fmt.Errorf("init guard: %w", err)
	}

	// Metrics registry, when enabled
	var metrics *metric.Registry
	if cfg.Telemetry.Metrics {
		metrics = metric.Global()
	}

	// Assemble the router and HTTP server
	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Guard:        guard,
		Logger:       slogLogger,
		Metrics:      metrics,
		TrustProxy:   cfg.Server.TrustProxy,
		RatePerIP:    cfg.Limits.RatePerIP,
		Burst:        cfg.Limits.Burst,
		MaxBodyBytes: cfg.Limits.MaxBodyBytes,
		IdleEviction: cfg.Limits.IdleEviction,
	})

	httpServer := httpserver.New(cfg.Server, router)

	// Setup graceful shutdown
	shutdownHandler := shutdown.NewHandler(cfg.Server.ShutdownTimeout)

	// Register shutdown hooks (run in reverse order of registration)
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("stopping router")
		router.Close()
		return nil
	})

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	// Optional config file watcher. Guard settings never rebind
	// in-process, so a change only warns that a restart is needed.
	if cfg.Server.WatchConfig && *configFile != "" {
		watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(slogLogger))
		if err != nil {
			return fmt.Errorf("init config watcher: %w", err)
		}
		if err := watcher.Watch(*configFile); err != nil {
			return fmt.Errorf("watch config: %w", err)
		}
		watcher.OnChange(func(path string) {
			log.Warn("configuration file changed, restart to apply", "path", path)
		})
		watcher.StartAsync()

		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			return watcher.Stop()
		})
	}

	// Start HTTP server in goroutine
	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.Addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			shutdownHandler.Trigger()
		}
	}()

	// Wait for shutdown signal
	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	// Start with defaults
	cfg := config.Default()

	// Create loader with optional config file
	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)

	// Load and unmarshal
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger.
// Returns both the logger interface and a slog.Logger sharing the same
// redacting handler, for components that take *slog.Logger.
func initLogger(cfg *config.ServerConfig) (logger.Logger, *slog.Logger, error) {
	logCfg := logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	}

	log, err := logger.New(logCfg)
	if err != nil {
		return nil, nil, err
	}

	// Set as default logger
	logger.SetDefault(log)

	return log, logger.NewSlog(logCfg), nil
}
