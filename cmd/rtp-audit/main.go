// Command rtp-audit serves the RTP audit API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/MJE43/rtp-audit/internal/api"
	"github.com/MJE43/rtp-audit/internal/audit"
	"github.com/MJE43/rtp-audit/internal/catalog"
	"github.com/MJE43/rtp-audit/internal/config"
	"github.com/MJE43/rtp-audit/internal/logging"
	"github.com/MJE43/rtp-audit/internal/scenario"
	"github.com/MJE43/rtp-audit/internal/store"
	"github.com/MJE43/rtp-audit/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rtp-audit: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Endpoint)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}

	cache, err := store.Open(ctx, store.Options{
		Backend:    cfg.Cache.Backend,
		SQLitePath: cfg.Cache.SQLitePath,
		RedisAddr:  cfg.Cache.RedisAddr,
		RedisDB:    cfg.Cache.RedisDB,
		KeyPrefix:  cfg.Cache.KeyPrefix,
	})
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer cache.Close()

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	janitorDone := make(chan struct{})
	go func() {
		defer close(janitorDone)
		store.Janitor(janitorCtx, cache, cfg.Cache.TTL, logger.Named("cache"))
	}()
	defer func() {
		stopJanitor()
		<-janitorDone
	}()

	runner := audit.NewRunner(catalog.Default(), scenario.DefaultRegistry(),
		audit.WithWorkers(cfg.Audit.Workers),
		audit.WithTolerance(audit.TolerancePolicy{Tolerance: cfg.Audit.Tolerance, Epsilon: cfg.Audit.Epsilon}),
		audit.WithStatusPolicy(audit.StatusPolicy{WarningAbove: cfg.Audit.WarningAbove, CriticalAbove: cfg.Audit.CriticalAbove}),
		audit.WithLogger(logger.Named("audit")),
	)

	server := api.NewServer(runner, cache, api.OptionsFromConfig(cfg), logger.Named("api"))
	if _, err := server.Start(cfg.Server.Addr); err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
	}

	logger.Info("rtp-audit started",
		zap.String("version", api.EngineVersion),
		zap.String("addr", cfg.Server.Addr),
		zap.String("cache", cfg.Cache.Backend),
	)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown", zap.Error(err))
	}
	return nil
}
