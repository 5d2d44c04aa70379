package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/simbrella/cms-console/internal/adapters/memory"
	"github.com/simbrella/cms-console/internal/adapters/session"
	"github.com/simbrella/cms-console/internal/apiclient"
	domainauth "github.com/simbrella/cms-console/internal/domain/auth"
	"github.com/simbrella/cms-console/internal/domain/model"
	"github.com/simbrella/cms-console/internal/service"
)

const testPassword = "password123"

// fakeContentAPI is a small stand-in for the remote content API. It knows two users:
// an editor holding blog_view and blog_create, and a super admin.
type fakeContentAPI struct {
	mu        sync.Mutex
	nextID    int64
	posts     map[int64]model.BlogPost
	listCalls atomic.Int32
}

func newFakeContentAPI() *fakeContentAPI {
	return &fakeContentAPI{posts: map[int64]model.BlogPost{}}
}

var fakeUsers = map[string]domainauth.UserProfile{
	"editor@example.com": {
		ID: 1, FirstName: "Eddie", LastName: "Editor", Email: "editor@example.com",
		Permissions: []domainauth.Permission{{ID: 1, Name: domainauth.PermBlogView}, {ID: 2, Name: domainauth.PermBlogCreate}},
	},
	"super@example.com": {
		ID: 2, FirstName: "Sam", LastName: "Super", Email: "super@example.com",
		Roles: []domainauth.Role{{ID: 1, Name: domainauth.SuperRole}},
	},
}

func (f *fakeContentAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodPost && r.URL.Path == "/auth/login" {
		f.login(w, r)
		return
	}

	user, ok := f.caller(r)
	if !ok {
		writeAPI(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Unauthenticated."})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/auth/me":
		writeAPI(w, http.StatusOK, map[string]any{"success": true, "data": user})
	case r.Method == http.MethodGet && r.URL.Path == "/public/blog-posts":
		f.listCalls.Add(1)
		posts := make([]model.BlogPost, 0, len(f.posts))
		for id := int64(1); id <= f.nextID; id++ {
			if p, ok := f.posts[id]; ok {
				posts = append(posts, p)
			}
		}
		writeAPI(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    posts,
			"meta":    model.PageMeta{CurrentPage: 1, LastPage: 1, PerPage: 10, Total: len(posts)},
		})
	case r.Method == http.MethodPost && r.URL.Path == "/blog-posts":
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			writeAPI(w, http.StatusBadRequest, map[string]any{"success": false, "message": "bad form"})
			return
		}
		f.nextID++
		p := model.BlogPost{
			Record: model.Record{ID: f.nextID},
			Title:  r.FormValue("title"),
			Body:   r.FormValue("body"),
			Status: model.StringStatus(r.FormValue("status")),
		}
		f.posts[p.ID] = p
		writeAPI(w, http.StatusCreated, map[string]any{"success": true, "data": p})
	case strings.HasPrefix(r.URL.Path, "/admin/blog-posts/"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/admin/blog-posts/"), 10, 64)
		p, ok := f.posts[id]
		if !ok {
			writeAPI(w, http.StatusNotFound, map[string]any{"success": false, "message": "Blog post not found."})
			return
		}
		if r.Method == http.MethodDelete {
			delete(f.posts, id)
			writeAPI(w, http.StatusOK, map[string]any{"success": true, "message": "Blog post deleted"})
			return
		}
		writeAPI(w, http.StatusOK, map[string]any{"success": true, "data": p})
	default:
		writeAPI(w, http.StatusNotFound, map[string]any{"success": false})
	}
}

func (f *fakeContentAPI) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	user, ok := fakeUsers[req.Email]
	if !ok || req.Password != testPassword {
		writeAPI(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "These credentials do not match our records."})
		return
	}
	writeAPI(w, http.StatusOK, map[string]any{
		"success": true,
		"data": domainauth.Grant{
			AccessToken: "tok-" + req.Email,
			TokenType:   "Bearer",
			ExpiresIn:   3600,
			User:        user,
		},
	})
}

func (f *fakeContentAPI) caller(r *http.Request) (domainauth.UserProfile, bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer tok-")
	user, ok := fakeUsers[token]
	return user, ok
}

func writeAPI(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// console is a running BFF wired to a fake content API, with in-memory stores.
type console struct {
	api      *fakeContentAPI
	server   *httptest.Server
	sessions *memory.SessionStore
	views    *memory.ViewCache
}

func newConsole(t *testing.T) *console {
	t.Helper()
	api := newFakeContentAPI()
	apiServer := httptest.NewServer(api)
	t.Cleanup(apiServer.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := apiclient.New(apiclient.Options{
		BaseURL:  apiServer.URL,
		Sessions: session.ContextSupplier{},
		Logger:   logger,
	})
	require.NoError(t, err)

	sessions := memory.NewSessionStore()
	views := memory.NewViewCache()
	deps := service.ActionDeps{API: client, Views: views, Telemetry: service.Telemetry{Logger: logger}}

	handler := NewRouter(RouterServices{
		Auth:            service.NewAuthService(service.AuthServiceOptions{Actions: deps, Sessions: sessions}),
		BlogPosts:       service.NewBlogPostService(deps),
		Careers:         service.NewCareerService(deps),
		Messages:        service.NewMessageService(deps),
		HeroSections:    service.NewHeroSectionService(deps),
		AboutSections:   service.NewAboutSectionService(deps),
		ServiceSections: service.NewServiceSectionService(deps),
		ProductSections: service.NewProductSectionService(deps),
		Dashboard:       service.NewDashboardService(deps),
		Views:           ViewCacheConfig{Cache: views, TTL: time.Minute},
		Metrics:         NewMetrics(prometheus.NewRegistry()),
		Logger:          logger,
	})
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &console{api: api, server: server, sessions: sessions, views: views}
}

// browser is a cookie-carrying client that echoes the CSRF cookie in the header.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
	csrf   string
}

func (c *console) browser(t *testing.T) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	b := &browser{t: t, base: c.server.URL, client: &http.Client{Jar: jar}}

	var body map[string]string
	resp := b.do(http.MethodGet, "/auth/csrf", nil, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b.csrf = body["token"]
	require.NotEmpty(t, b.csrf)
	return b
}

// do sends a JSON request and decodes the response into out when out is not nil.
func (b *browser) do(method, path string, payload any, out any) *http.Response {
	b.t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(b.t, err)
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, b.base+path, body)
	require.NoError(b.t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if b.csrf != "" {
		req.Header.Set(DefaultCSRFHeaderName, b.csrf)
	}
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	if out != nil {
		require.NoError(b.t, json.Unmarshal(raw, out), string(raw))
	}
	return resp
}

func (b *browser) login(email string) {
	b.t.Helper()
	resp := b.do(http.MethodPost, "/auth/login", map[string]any{"email": email, "password": testPassword}, nil)
	require.Equal(b.t, http.StatusOK, resp.StatusCode)
}
