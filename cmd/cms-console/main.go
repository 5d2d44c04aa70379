// Command cms-console serves the CMS admin console: a backend-for-frontend that keeps
// sessions server-side and forwards content actions to the remote content API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/simbrella/cms-console/config"
	"github.com/simbrella/cms-console/internal/adapters/session"
	"github.com/simbrella/cms-console/internal/bootstrap"
	"github.com/simbrella/cms-console/internal/observability/statsd"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger(false)
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.IsDev {
		logger = bootstrap.InitLogger(true)
	}
	logStartupInfo(ctx, logger, &cfg)

	redisClient, err := connectRedis(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	sink := bootstrap.BuildMetricsSink(cfg.Observability.Metrics, logger)
	if c, ok := sink.(*statsd.Client); ok {
		defer func() {
			if cerr := c.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close statsd client failed", "error", cerr)
			}
		}()
	}

	stores := bootstrap.BuildStores(bootstrap.StoresConfig{
		Redis:       cfg.Redis,
		Cache:       cfg.Cache,
		RedisClient: redisClient,
		Logger:      logger,
	})
	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:   &cfg,
		Stores:   stores,
		Sessions: session.ContextSupplier{},
		Metrics:  sink,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("build services: %w", err)
	}

	return bootstrap.RunWithShutdown(ctx, &bootstrap.ServerConfig{
		Config:   &cfg,
		Services: services,
		Stores:   stores,
		Logger:   logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting cms console",
		"api_base_url", cfg.API.BaseURL,
		"http_addr", cfg.HTTP.Addr,
		"redis_enabled", cfg.Redis.Enabled,
		"view_cache_ttl", cfg.Cache.ViewTTL,
		"metrics", cfg.HTTP.MetricsEnabled,
		"dev", cfg.IsDev)
}

// connectRedis returns nil when Redis is disabled; sessions then live in process memory.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func connectRedis(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}
	client, err := bootstrap.ConnectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}
