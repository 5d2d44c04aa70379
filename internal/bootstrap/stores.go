package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/simbrella/cms-console/config"
	"github.com/simbrella/cms-console/internal/adapters/memory"
	redisadapter "github.com/simbrella/cms-console/internal/adapters/redis"
	httpx "github.com/simbrella/cms-console/internal/http"
	"github.com/simbrella/cms-console/internal/ports"
)

// Stores holds the session store and view cache backing the console.
type Stores struct {
	Sessions ports.SessionStore
	// Views is nil when view caching is disabled.
	Views ports.ViewCache
	// Health probes the store backends for /healthz.
	Health []httpx.HealthChecker
	// sweeper is set for the in-memory session store, which needs periodic purging.
	sweeper *memory.SessionStore
}

// StoresConfig selects the store backends.
type StoresConfig struct {
	Redis       config.RedisConfig
	Cache       config.CacheConfig
	RedisClient redis.UniversalClient // nil selects in-process stores
	Logger      *slog.Logger
}

// BuildStores picks Redis-backed stores when a client is available, otherwise in-memory ones.
func BuildStores(cfg StoresConfig) Stores {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var s Stores
	if cfg.RedisClient != nil {
		s.Sessions = redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, cfg.Redis.SessionPrefix)
		s.Health = []httpx.HealthChecker{redisHealth{client: cfg.RedisClient}}
		if cfg.Cache.Enabled() {
			s.Views = redisadapter.NewViewCache(cfg.RedisClient, cfg.Cache.ViewPrefix)
		}
		return s
	}

	logger.Warn("redis disabled; sessions and views are kept in process memory")
	mem := memory.NewSessionStore()
	s.Sessions = mem
	s.sweeper = mem
	if cfg.Cache.Enabled() {
		s.Views = memory.NewViewCache()
	}
	return s
}

// RunSessionSweeper purges expired in-memory sessions every interval until ctx is done.
// It returns immediately when the stores need no sweeping.
func RunSessionSweeper(ctx context.Context, stores Stores, interval time.Duration, logger *slog.Logger) {
	if stores.sweeper == nil || interval <= 0 {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := stores.sweeper.Sweep(ctx); n > 0 {
				logger.DebugContext(ctx, "expired sessions swept", "count", n)
			}
		}
	}
}
