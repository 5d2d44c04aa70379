package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/simbrella/cms-console/config"
	httpx "github.com/simbrella/cms-console/internal/http"
)

const shutdownTimeout = 10 * time.Second

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Stores   Stores
	Logger   *slog.Logger
}

// BuildHTTPHandler assembles the router with its middleware.
func BuildHTTPHandler(cfg *HTTPServerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	var metrics *httpx.Metrics
	if appCfg.HTTP.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = httpx.NewMetrics(reg)
	}

	return httpx.NewRouter(httpx.RouterServices{
		Auth:            cfg.Services.Auth,
		BlogPosts:       cfg.Services.BlogPosts,
		Careers:         cfg.Services.Careers,
		Messages:        cfg.Services.Messages,
		HeroSections:    cfg.Services.HeroSections,
		AboutSections:   cfg.Services.AboutSections,
		ServiceSections: cfg.Services.ServiceSections,
		ProductSections: cfg.Services.ProductSections,
		Dashboard:       cfg.Services.Dashboard,
		CookieDomain:    appCfg.HTTP.CookieDomain,
		Views: httpx.ViewCacheConfig{
			Cache:   cfg.Stores.Views,
			TTL:     appCfg.Cache.ViewTTL,
			Logger:  logger,
			Metrics: metrics,
		},
		Metrics: metrics,
		Health:  cfg.Stores.Health,
		Logger:  logger,
	})
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown; listen failures are sent on errCh.
func StartHTTPServer(cfg *HTTPServerConfig, errCh chan<- error) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	addr := ":8080"
	if cfg.Config != nil && cfg.Config.HTTP.Addr != "" {
		addr = cfg.Config.HTTP.Addr
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           BuildHTTPHandler(cfg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			if errCh != nil {
				errCh <- err
			}
		}
	}()

	return server
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("HTTP server stopped")
	return nil
}
