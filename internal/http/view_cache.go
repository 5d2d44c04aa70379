package httpx

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/simbrella/cms-console/internal/ports"
)

// ViewCacheConfig configures CacheView.
type ViewCacheConfig struct {
	Cache   ports.ViewCache // nil disables caching
	TTL     time.Duration
	Logger  *slog.Logger
	Metrics *Metrics
}

// ViewKeyFunc names the cached view a request reads: the path mutations invalidate and
// the variant within it. An empty view bypasses the cache.
type ViewKeyFunc func(r *http.Request) (view, variant string)

// CacheView serves GET responses for a console view from the cache.
// Only 200 responses are stored. Cache failures fall through to next.
func CacheView(cfg ViewCacheConfig, key ViewKeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cfg.Cache == nil || cfg.TTL <= 0 {
			return next
		}
		logger := cfg.Logger
		if logger == nil {
			logger = slog.Default()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			view, variant := key(r)
			if r.Method != http.MethodGet || view == "" {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()

			body, ok, err := cfg.Cache.Get(ctx, view, variant)
			switch {
			case err != nil:
				cfg.Metrics.recordCache("error")
				logger.WarnContext(ctx, "view cache read failed", "view", view, "error", err)
			case ok:
				cfg.Metrics.recordCache("hit")
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-View-Cache", "hit")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(body)
				return
			default:
				cfg.Metrics.recordCache("miss")
			}

			rec := &recordingWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			if rec.status != http.StatusOK {
				return
			}
			if err := cfg.Cache.Put(ctx, view, variant, rec.body.Bytes(), cfg.TTL); err != nil {
				logger.WarnContext(ctx, "view cache write failed", "view", view, "error", err)
			}
		})
	}
}

// recordingWriter passes a response through while keeping a copy of the body.
type recordingWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *recordingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}
