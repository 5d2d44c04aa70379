package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/simbrella/cms-console/config"
)

// ServerConfig contains everything RunWithShutdown needs to serve the console.
type ServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Stores   Stores
	Logger   *slog.Logger
}

// RunWithShutdown serves HTTP and runs the session sweeper until SIGINT/SIGTERM or a
// server failure, then shuts both down.
func RunWithShutdown(ctx context.Context, cfg *ServerConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Stores:   cfg.Stores,
		Logger:   logger,
	}, errCh)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		RunSessionSweeper(gctx, cfg.Stores, cfg.Config.Auth.SweepInterval, logger)
		return nil
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			logger.Info("shutting down services...")
			return nil
		case err := <-errCh:
			return fmt.Errorf("http server: %w", err)
		}
	})

	runErr := g.Wait()
	// The parent ctx may already be cancelled; shutdown gets its own deadline.
	if err := ShutdownHTTPServer(context.WithoutCancel(ctx), server, logger); err != nil {
		return errors.Join(runErr, fmt.Errorf("shutdown http server: %w", err))
	}
	return runErr
}
