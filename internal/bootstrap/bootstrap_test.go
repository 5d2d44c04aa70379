package bootstrap

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simbrella/cms-console/config"
	"github.com/simbrella/cms-console/internal/adapters/memory"
	"github.com/simbrella/cms-console/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.AppConfig {
	cfg := &config.AppConfig{
		API:   config.APIConfig{BaseURL: "https://api.example.com/api"},
		Cache: config.CacheConfig{ViewTTL: time.Minute},
		HTTP:  config.HTTPConfig{MetricsEnabled: true},
	}
	cfg.Sanitize()
	return cfg
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_ADDR=:9191\nAUTH_SUPER_ROLE=owner\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("HTTP_ADDR")
		_ = os.Unsetenv("AUTH_SUPER_ROLE")
	})

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9191", cfg.HTTP.Addr)
	assert.Equal(t, "owner", cfg.Auth.SuperRole)
	assert.Equal(t, config.DefaultAPIBaseURL, cfg.API.BaseURL)
}

func TestLoadConfig_MissingFileIsIgnored(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}

func TestBuildStores_MemoryFallback(t *testing.T) {
	stores := BuildStores(StoresConfig{Cache: config.CacheConfig{ViewTTL: time.Minute}, Logger: discardLogger()})

	assert.IsType(t, &memory.SessionStore{}, stores.Sessions)
	assert.IsType(t, &memory.ViewCache{}, stores.Views)
	assert.Empty(t, stores.Health)
	assert.NotNil(t, stores.sweeper)

	stores = BuildStores(StoresConfig{Logger: discardLogger()})
	assert.Nil(t, stores.Views, "zero TTL disables the view cache")
}

func TestBuildStores_Redis(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	stores := BuildStores(StoresConfig{
		Redis:       config.RedisConfig{SessionPrefix: "test:session:"},
		Cache:       config.CacheConfig{ViewTTL: time.Minute, ViewPrefix: "test:view:"},
		RedisClient: client,
	})

	assert.Nil(t, stores.sweeper)
	require.Len(t, stores.Health, 1)
	require.NoError(t, stores.Health[0].Health(t.Context()))

	sess := testutil.NewSession("abc").ExpiresAt(time.Now().Add(time.Minute)).Build()
	require.NoError(t, stores.Sessions.Save(t.Context(), sess))
	assert.Equal(t, int64(1), client.Exists(t.Context(), "test:session:abc").Val())
}

// syncBuffer is a bytes.Buffer safe for the sweeper goroutine to log into.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunSessionSweeper(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	stores := BuildStores(StoresConfig{Logger: discardLogger()})

	sess := testutil.NewSession("short").ExpiresAt(time.Now().Add(20 * time.Millisecond)).Build()
	require.NoError(t, stores.Sessions.Save(t.Context(), sess))

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		defer close(done)
		RunSessionSweeper(ctx, stores, 5*time.Millisecond, logger)
	}()

	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("expired sessions swept"))
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func TestRunSessionSweeper_NothingToSweep(t *testing.T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		RunSessionSweeper(t.Context(), Stores{}, time.Millisecond, nil)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper should return at once without a memory store")
	}
}

func TestNewServices(t *testing.T) {
	cfg := testConfig()
	stores := BuildStores(StoresConfig{Cache: cfg.Cache, Logger: discardLogger()})

	svcs, err := NewServices(&ServiceDeps{Config: cfg, Stores: stores, Logger: discardLogger()})
	require.NoError(t, err)
	assert.NotNil(t, svcs.Auth)
	assert.NotNil(t, svcs.BlogPosts)
	assert.NotNil(t, svcs.Careers)
	assert.NotNil(t, svcs.Messages)
	assert.NotNil(t, svcs.HeroSections)
	assert.NotNil(t, svcs.AboutSections)
	assert.NotNil(t, svcs.ServiceSections)
	assert.NotNil(t, svcs.ProductSections)
	assert.NotNil(t, svcs.Dashboard)
	assert.Equal(t, "/login", svcs.Auth.Routes().LoginPath)
}

func TestNewServices_Errors(t *testing.T) {
	_, err := NewServices(nil)
	require.Error(t, err)

	cfg := testConfig()
	_, err = NewServices(&ServiceDeps{Config: cfg})
	require.ErrorContains(t, err, "session store")

	cfg.API.BaseURL = "not a url"
	_, err = NewServices(&ServiceDeps{Config: cfg, Stores: BuildStores(StoresConfig{Logger: discardLogger()})})
	require.ErrorContains(t, err, "create api client")
}

func TestBuildMetricsSink(t *testing.T) {
	assert.Nil(t, BuildMetricsSink(config.ObservabilityMetricsConfig{}, discardLogger()))
}

func TestBuildHTTPHandler(t *testing.T) {
	cfg := testConfig()
	stores := BuildStores(StoresConfig{Cache: cfg.Cache, Logger: discardLogger()})
	svcs, err := NewServices(&ServiceDeps{Config: cfg, Stores: stores, Logger: discardLogger()})
	require.NoError(t, err)

	h := BuildHTTPHandler(&HTTPServerConfig{Config: cfg, Services: svcs, Stores: stores, Logger: discardLogger()})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/blog-posts", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStartAndShutdownHTTPServer(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.Addr = "127.0.0.1:0"
	stores := BuildStores(StoresConfig{Logger: discardLogger()})
	svcs, err := NewServices(&ServiceDeps{Config: cfg, Stores: stores, Logger: discardLogger()})
	require.NoError(t, err)

	errCh := make(chan error, 1)
	server := StartHTTPServer(&HTTPServerConfig{Config: cfg, Services: svcs, Stores: stores, Logger: discardLogger()}, errCh)
	require.NotNil(t, server)
	require.NoError(t, ShutdownHTTPServer(t.Context(), server, discardLogger()))
	require.NoError(t, ShutdownHTTPServer(t.Context(), nil, nil))
}
