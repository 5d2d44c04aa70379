package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simbrella/cms-console/internal/adapters/memory"
	"github.com/simbrella/cms-console/internal/apiclient"
	"github.com/simbrella/cms-console/internal/domain/model"
	"github.com/simbrella/cms-console/internal/service"
)

type nopRequester struct{}

func (nopRequester) Do(context.Context, apiclient.Request) (*apiclient.Envelope[json.RawMessage], error) {
	return nil, errors.New("unexpected call")
}

func TestCacheView(t *testing.T) {
	cache := memory.NewViewCache()
	metrics := NewMetrics(prometheus.NewRegistry())
	calls := 0
	status := http.StatusOK
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		WriteJSON(w, status, map[string]int{"calls": calls})
	})
	h := CacheView(ViewCacheConfig{
		Cache:   cache,
		TTL:     time.Minute,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: metrics,
	}, func(r *http.Request) (string, string) { return "/blog-management", r.URL.RawQuery })(next)

	get := func(target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		return w
	}

	first := get("/api/blog-posts?page=1")
	second := get("/api/blog-posts?page=1")
	assert.Equal(t, 1, calls)
	assert.Equal(t, "hit", second.Header().Get("X-View-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	get("/api/blog-posts?page=2")
	assert.Equal(t, 2, calls, "query string is part of the key")

	require.NoError(t, cache.Invalidate(t.Context(), "/blog-management"))
	get("/api/blog-posts?page=1")
	assert.Equal(t, 3, calls)

	status = http.StatusBadRequest
	get("/api/blog-posts?page=3")
	get("/api/blog-posts?page=3")
	assert.Equal(t, 5, calls, "failures are not cached")

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.cache.WithLabelValues("hit")), 0)
	assert.InDelta(t, 5, testutil.ToFloat64(metrics.cache.WithLabelValues("miss")), 0)
}

func TestCacheView_Disabled(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	h := CacheView(ViewCacheConfig{}, func(*http.Request) (string, string) { return "/x", "" })(next)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestResourceListView_NormalizesVariant(t *testing.T) {
	h := &ResourceHandlers[model.BlogPost]{Svc: service.NewBlogPostService(service.ActionDeps{API: nopRequester{}})}

	view, a := h.listView(httptest.NewRequest(http.MethodGet, "/api/blog-posts?search=go&page=1&utm=x1", nil))
	_, b := h.listView(httptest.NewRequest(http.MethodGet, "/api/blog-posts?page=1&search=go&utm=x2", nil))
	_, c := h.listView(httptest.NewRequest(http.MethodGet, "/api/blog-posts?page=abc&search=go", nil))

	assert.Equal(t, service.BlogPostSpec.ViewPath, view)
	assert.Equal(t, a, b, "unknown keys and key order do not create new variants")
	assert.Equal(t, a, c, "malformed numbers fall back to defaults")
	assert.NotContains(t, a, "utm")
}
