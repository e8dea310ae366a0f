// Package main runs the mock console backend.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/console-client/internal/adapters/clients"
	"github.com/jsamuelsen/console-client/internal/adapters/clients/acl"
	"github.com/jsamuelsen/console-client/internal/adapters/http"
	"github.com/jsamuelsen/console-client/internal/adapters/http/handlers"
	"github.com/jsamuelsen/console-client/internal/adapters/memory"
	"github.com/jsamuelsen/console-client/internal/platform/config"
	"github.com/jsamuelsen/console-client/internal/platform/logging"
	"github.com/jsamuelsen/console-client/internal/platform/telemetry"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD)" ./cmd/mockserver
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

const healthCheckTimeout = 2 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "mockserver",
		Version: Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			Level:      cfg.Log.File.Level,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting mock console",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.Bool("faults", cfg.Mock.Faults),
	)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName + "-mock",
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	backend := memory.NewBackend(cfg.Mock.Username, cfg.Mock.Password)

	healthRegistry, err := newHealthRegistry(cfg, backend, logger)
	if err != nil {
		return err
	}

	metrics, err := telemetry.NewEnvelopeMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("registering envelope metrics: %w", err)
	}

	if cfg.App.Environment != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := http.New(&cfg.Server, logger)

	routerCfg := http.NewDefaultRouterConfig(logger, "console-mock", http.Stores{
		Sessions:    backend.Sessions,
		Users:       backend.Users,
		Roles:       backend.Roles,
		Departments: backend.Departments,
	})
	routerCfg.Health = handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo(Version, Commit, BuildTime))
	routerCfg.Metrics = metrics
	routerCfg.Faults = cfg.Mock.Faults
	http.SetupRouter(server.Engine(), routerCfg)

	serverErr := server.Start()

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// newHealthRegistry checks the in-memory stores and, when one is configured,
// the identity endpoint logins would be forwarded to.
func newHealthRegistry(cfg *config.Config, backend *memory.Backend, logger *slog.Logger) (ports.HealthRegistry, error) {
	registry := ports.NewHealthRegistry()
	registry.CheckTimeout = healthCheckTimeout

	if err := registry.Register(backend); err != nil {
		return nil, fmt.Errorf("registering backend health check: %w", err)
	}

	if !cfg.Services.Identity.Enabled() {
		return registry, nil
	}

	identity, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Identity.BaseURL,
		ServiceName: cfg.Services.Identity.Name,
		Timeout:     healthCheckTimeout,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating identity client: %w", err)
	}

	if err := registry.Register(acl.NewConsoleHealth(cfg.Services.Identity.Name, cfg.Services.Console.HealthPath, identity)); err != nil {
		return nil, fmt.Errorf("registering identity health check: %w", err)
	}

	return registry, nil
}

// waitForShutdown blocks until a signal or a server error, then drains
// in-flight requests within shutdownTimeout.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
