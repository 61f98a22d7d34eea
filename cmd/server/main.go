package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rezkam/upkeep/internal/application/tracker"
	"github.com/rezkam/upkeep/internal/config"
	upkeephttp "github.com/rezkam/upkeep/internal/http"
	"github.com/rezkam/upkeep/internal/storage/fs"
	"github.com/rezkam/upkeep/internal/storage/gcs"
	"github.com/rezkam/upkeep/internal/storage/memory"
	"github.com/rezkam/upkeep/internal/storage/postgres"
	"github.com/rezkam/upkeep/internal/storage/sqlite"
	"github.com/rezkam/upkeep/pkg/observability"
)

const serviceName = "upkeep"

func main() {
	if err := run(); err != nil {
		// Use stderr directly as slog might not be initialized if config fails
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Root context for all normal operations; cancels on SIGTERM/SIGINT
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Init Observability (Logger, Tracer, Meter)
	// Configuration via OTEL_* env vars (endpoint, headers, resource attributes)
	lp, logger, err := observability.InitLogger(ctx, serviceName, cfg.OTelEnabled)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer shutdownProvider(lp.Shutdown, "logger provider")
	slog.SetDefault(logger)

	tp, err := observability.InitTracerProvider(ctx, serviceName, cfg.OTelEnabled)
	if err != nil {
		return fmt.Errorf("failed to init tracer provider: %w", err)
	}
	defer shutdownProvider(tp.Shutdown, "tracer provider")

	mp, err := observability.InitMeterProvider(ctx, serviceName, cfg.OTelEnabled)
	if err != nil {
		return fmt.Errorf("failed to init meter provider: %w", err)
	}
	defer shutdownProvider(mp.Shutdown, "meter provider")

	slog.InfoContext(ctx, "starting upkeep service",
		"env", cfg.Env,
		"storage", cfg.StorageType)

	repo, err := newRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer func() {
		if closer, ok := repo.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Error("failed to close store", "error", err)
			}
		}
	}()

	service := tracker.NewService(repo, tracker.Config{
		DueSoonWindowDays: cfg.DueSoonWindowDays,
	})

	router := upkeephttp.NewRouter(service)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "http.server"),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errResult := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "HTTP server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errResult <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.WarnContext(shutdownCtx, "HTTP server shutdown timed out, forcing close", "error", err)
			return server.Close()
		}

		slog.InfoContext(shutdownCtx, "HTTP server shutdown complete")
		return nil
	case err := <-errResult:
		return err
	}
}

// newRepository builds the task repository selected by configuration.
func newRepository(ctx context.Context, cfg *config.Config) (tracker.Repository, error) {
	switch cfg.StorageType {
	case "memory":
		return memory.NewStore(), nil
	case "fs":
		return fs.NewStore(cfg.FSDir)
	case "gcs":
		return gcs.NewStore(ctx, cfg.GCSBucket)
	case "sqlite":
		return sqlite.NewStore(ctx, cfg.SQLitePath)
	case "postgres":
		return postgres.NewPostgresStore(ctx, cfg.PostgresURL)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.StorageType)
	}
}

// shutdownProvider flushes an observability provider with a timeout so an
// unreachable collector can't hang process exit.
func shutdownProvider(shutdown func(context.Context) error, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown "+name, "error", err)
	}
}
