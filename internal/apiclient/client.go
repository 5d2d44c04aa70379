// Package apiclient is the session-aware HTTP client for the remote content API.
//
// Each call is a single attempt: no retries and no caching. Authentication, body
// encoding and response normalization happen here so that callers only see an
// Envelope or a tagged *errors.AppError.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/simbrella/cms-console/internal/errors"
	"github.com/simbrella/cms-console/internal/observability/metrics"
	"github.com/simbrella/cms-console/internal/observability/statsd"
	"github.com/simbrella/cms-console/internal/ports"
)

const (
	defaultTimeout   = 15 * time.Second
	maxResponseBytes = 10 << 20
)

// Requester performs one API call. *Client implements it; tests substitute mocks.
type Requester interface {
	Do(ctx context.Context, req Request) (*Envelope[json.RawMessage], error)
}

// Request describes one API call.
type Request struct {
	Method string
	// Path is relative to the base URL and may carry its own query string.
	Path   string
	Query  url.Values
	Body   Body
	Header http.Header
	// NoAuth skips the bearer token; requests are authenticated by default.
	NoAuth bool
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
	Sessions   ports.SessionSupplier
	Metrics    statsd.Sink
	Logger     *slog.Logger
}

// Client talks to the content API.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	sessions  ports.SessionSupplier
	metrics   statsd.Sink
	logger    *slog.Logger
}

var _ Requester = (*Client)(nil)

// New builds a Client. Sessions may be nil, in which case no call is authenticated.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("api base url is required")
	}
	if u, err := url.Parse(base); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", base)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:   base,
		userAgent: opts.UserAgent,
		http:      hc,
		sessions:  opts.Sessions,
		metrics:   opts.Metrics,
		logger:    logger.With("component", "apiclient"),
	}, nil
}

// Do performs req and returns the parsed envelope.
//
// Errors are *errors.AppError tagged transport, non_json, malformed or api. An api error
// carries the envelope's message, its field errors and the HTTP status.
func (c *Client) Do(ctx context.Context, req Request) (*Envelope[json.RawMessage], error) {
	start := time.Now()
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	env, status, err := c.do(ctx, method, req)

	metrics.EmitAPIRequest(c.metrics, metrics.APIRequestMetric{
		Method:   method,
		Endpoint: EndpointTag(req.Path),
		Status:   status,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		c.logger.WarnContext(ctx, "api request failed",
			"method", method,
			"path", req.Path,
			"status", status,
			"error", err,
		)
		return nil, err
	}
	c.logger.DebugContext(ctx, "api request",
		"method", method,
		"path", req.Path,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return env, nil
}

func (c *Client) do(ctx context.Context, method string, req Request) (*Envelope[json.RawMessage], int, error) {
	httpReq, err := c.newRequest(ctx, method, req)
	if err != nil {
		return nil, 0, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, 0, transportError(ctx, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if !isJSON(resp.Header.Get("Content-Type")) {
		return nil, resp.StatusCode, apperrors.NonJSON(resp.Header.Get("Content-Type"))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, transportError(ctx, err)
	}

	var env Envelope[json.RawMessage]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, resp.StatusCode, apperrors.Malformed(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, apperrors.API(resp.StatusCode, env.Message, env.Errors)
	}
	return &env, resp.StatusCode, nil
}

func (c *Client) newRequest(ctx context.Context, method string, req Request) (*http.Request, error) {
	target, err := c.resolve(req.Path, req.Query)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request url")
	}

	var (
		body        io.Reader
		contentType string
	)
	if req.Body != nil {
		body, contentType, err = req.Body.encode()
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "create request")
	}

	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		// Multipart boundaries are generated by the encoder, so callers cannot override this.
		httpReq.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	if !req.NoAuth && c.sessions != nil {
		sess, err := c.sessions.Current(ctx)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeAuth, "read current session")
		}
		if sess != nil && sess.AccessToken != "" {
			httpReq.Header.Set("Authorization", sess.BearerToken())
		}
	}
	return httpReq, nil
}

func (c *Client) resolve(path string, query url.Values) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", err
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

func transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return apperrors.Wrap(err, apperrors.ErrCodeCanceled, "request canceled")
	}
	return apperrors.Transport(err)
}

// EndpointTag collapses numeric path segments so metric tags stay low-cardinality,
// e.g. /admin/blog-posts/7/restore becomes /admin/blog-posts/:id/restore.
func EndpointTag(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	segs := strings.Split(path, "/")
	for i, s := range segs {
		if s != "" && strings.Trim(s, "0123456789") == "" {
			segs[i] = ":id"
		}
	}
	return strings.Join(segs, "/")
}
