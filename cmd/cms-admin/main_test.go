package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	domainauth "github.com/simbrella/cms-console/internal/domain/auth"
	"github.com/simbrella/cms-console/internal/domain/model"
)

const testPassword = "password123"

var cliUsers = map[string]domainauth.UserProfile{
	"viewer@example.com": {
		ID: 7, FirstName: "Vera", LastName: "Viewer", Email: "viewer@example.com",
		Permissions: []domainauth.Permission{{ID: 1, Name: domainauth.PermBlogView}},
	},
	"super@example.com": {
		ID: 8, FirstName: "Sam", LastName: "Super", Email: "super@example.com",
		Roles: []domainauth.Role{{ID: 1, Name: domainauth.SuperRole}},
	},
}

// fakeAPI serves the handful of content API endpoints the CLI tests touch.
type fakeAPI struct {
	deletes atomic.Int32
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodPost && r.URL.Path == "/auth/login" {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		user, ok := cliUsers[req.Email]
		if !ok || req.Password != testPassword {
			reply(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "These credentials do not match our records."})
			return
		}
		reply(w, http.StatusOK, map[string]any{"success": true, "data": domainauth.Grant{
			AccessToken: "tok-" + req.Email, TokenType: "Bearer", ExpiresIn: 3600, User: user,
		}})
		return
	}

	user, ok := cliUsers[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer tok-")]
	if !ok {
		reply(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Unauthenticated."})
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/auth/me":
		reply(w, http.StatusOK, map[string]any{"success": true, "data": user})
	case r.Method == http.MethodGet && r.URL.Path == "/public/blog-posts":
		reply(w, http.StatusOK, map[string]any{
			"success": true,
			"data": []model.BlogPost{
				{Record: model.Record{ID: 1}, Title: "Hello", Body: "<p>Welcome to <b>the</b> blog</p><script>x()</script>", Views: 12},
				{Record: model.Record{ID: 2}, Title: "Second", Body: "plain"},
			},
			"meta": model.PageMeta{CurrentPage: 1, LastPage: 3, PerPage: 2, Total: 6},
		})
	case r.Method == http.MethodDelete && r.URL.Path == "/admin/blog-posts/1":
		f.deletes.Add(1)
		reply(w, http.StatusOK, map[string]any{"success": true, "message": "Blog post deleted"})
	default:
		reply(w, http.StatusNotFound, map[string]any{"success": false, "message": "Not found."})
	}
}

func reply(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type cli struct {
	t           *testing.T
	api         *fakeAPI
	url         string
	sessionFile string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return &cli{t: t, api: api, url: srv.URL, sessionFile: filepath.Join(t.TempDir(), "session.json")}
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--api-url", c.url, "--session-file", c.sessionFile}, args...))
	err := cmd.ExecuteContext(c.t.Context())
	return out.String(), err
}

func (c *cli) login(email string) {
	c.t.Helper()
	_, err := c.run(testPassword+"\n", "login", "--email", email)
	require.NoError(c.t, err)
}

func exitCode(err error) int {
	var exit exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	return 0
}

func TestLoginWhoamiLogout(t *testing.T) {
	c := newCLI(t)

	out, err := c.run(testPassword+"\n", "login", "-e", "viewer@example.com", "-o", "json")
	require.NoError(t, err)
	assert.NotContains(t, out, "tok-", "the token is never printed")

	var who whoami
	require.NoError(t, json.Unmarshal([]byte(out), &who))
	assert.Equal(t, "viewer@example.com", who.Email)
	assert.Equal(t, "Vera Viewer", who.Name)
	assert.Equal(t, []string{domainauth.PermBlogView}, who.Permissions)
	assert.False(t, who.SuperAdmin)

	info, err := os.Stat(c.sessionFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err = c.run("", "whoami", "--refresh")
	require.NoError(t, err)
	assert.Contains(t, out, "viewer@example.com")

	out, err = c.run("", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out successfully")
	_, err = os.Stat(c.sessionFile)
	assert.True(t, os.IsNotExist(err))

	_, err = c.run("", "whoami")
	assert.Equal(t, exitNotSignedIn, exitCode(err))
}

func TestLoginFailures(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("", "login", "-e", "viewer@example.com", "-p", "wrong-password")
	require.EqualError(t, err, "Invalid email or password")

	_, err = c.run("", "login", "-e", "not-an-email", "-p", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid fields. Failed to log in.")
	assert.Contains(t, err.Error(), "email: Please enter a valid email address")

	_, err = os.Stat(c.sessionFile)
	assert.True(t, os.IsNotExist(err))
}

func TestCan(t *testing.T) {
	c := newCLI(t)
	c.login("viewer@example.com")

	out, err := c.run("", "can", domainauth.PermBlogView)
	require.NoError(t, err)
	assert.Contains(t, out, "PERMISSION")
	assert.Contains(t, out, "yes")

	out, err = c.run("", "can", domainauth.PermBlogView, domainauth.PermBlogDelete)
	assert.Equal(t, exitDenied, exitCode(err))
	assert.Contains(t, err.Error(), domainauth.PermBlogDelete)
	assert.Contains(t, out, "no")

	c.login("super@example.com")
	_, err = c.run("", "can", domainauth.PermCareerDelete, "anything_at_all")
	require.NoError(t, err)
}

func TestListTable(t *testing.T) {
	c := newCLI(t)
	c.login("viewer@example.com")

	out, err := c.run("", "list", "blog")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"ID", "TITLE", "STATUS", "VIEWS", "BODY"}, strings.Fields(lines[0]))
	assert.Contains(t, lines[1], "Welcome to the blog")
	assert.NotContains(t, lines[1], "<p>")
	assert.NotContains(t, lines[1], "x()")
	assert.Equal(t, "page 1 of 3 (6 total)", lines[3])
}

func TestListQueryAndFormats(t *testing.T) {
	c := newCLI(t)
	c.login("viewer@example.com")

	out, err := c.run("", "list", "blog-posts", "-o", "json", "-q", "data[].title")
	require.NoError(t, err)
	var titles []string
	require.NoError(t, json.Unmarshal([]byte(out), &titles))
	assert.Equal(t, []string{"Hello", "Second"}, titles)

	out, err = c.run("", "list", "blog-posts", "-o", "yaml")
	require.NoError(t, err)
	var page struct {
		Data []map[string]any `yaml:"data"`
		Meta model.PageMeta   `yaml:"meta"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &page))
	assert.Len(t, page.Data, 2)

	out, err = c.run("", "list", "blog-posts", "-q", "meta.total")
	require.NoError(t, err)
	assert.Equal(t, "6", strings.TrimSpace(out))

	_, err = c.run("", "list", "blog-posts", "-q", "data[")
	require.Error(t, err)
}

func TestPermissionChecksRunBeforeTheAPI(t *testing.T) {
	c := newCLI(t)
	c.login("viewer@example.com")

	_, err := c.run("", "delete", "blog-posts", "1")
	assert.Equal(t, exitDenied, exitCode(err))
	_, err = c.run("", "list", "careers")
	assert.Equal(t, exitDenied, exitCode(err))
	assert.Zero(t, c.api.deletes.Load())

	c.login("super@example.com")
	out, err := c.run("", "delete", "blog-posts", "1")
	require.NoError(t, err)
	assert.Equal(t, "Blog post deleted successfully\n", out)
	assert.EqualValues(t, 1, c.api.deletes.Load())

	_, err = c.run("", "get", "blog-posts", "99")
	require.Error(t, err)
}

func TestArgumentErrors(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("", "list", "blog-posts")
	assert.Equal(t, exitNotSignedIn, exitCode(err))

	c.login("super@example.com")
	_, err = c.run("", "list", "widgets")
	require.ErrorContains(t, err, `unknown resource "widgets"`)
	_, err = c.run("", "get", "blog-posts", "abc")
	require.ErrorContains(t, err, `invalid id "abc"`)
	_, err = c.run("", "list", "blog-posts", "-o", "xml")
	require.ErrorContains(t, err, "unsupported --output")
}

func TestDashboardFallsBack(t *testing.T) {
	c := newCLI(t)
	c.login("super@example.com")

	out, err := c.run("", "dashboard", "-o", "json")
	require.NoError(t, err)
	var overview model.DashboardOverview
	require.NoError(t, json.Unmarshal([]byte(out), &overview))
	assert.Empty(t, overview.TopBlogs)

	out, err = c.run("", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "== Statistics ==")
	assert.Contains(t, out, "== Recent activity ==")
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "markup stripped", in: "<h1>Title</h1><p>Some  <em>body</em></p>", max: 60, want: "Title Some body"},
		{name: "truncated on runes", in: "<p>héllo wörld</p>", max: 5, want: "héllo..."},
		{name: "plain text", in: "just text", max: 60, want: "just text"},
		{name: "style skipped", in: "<style>p{}</style>ok", max: 60, want: "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, excerpt(tt.in, tt.max))
		})
	}
}

func TestCell(t *testing.T) {
	assert.Equal(t, "12", cell(float64(12)))
	assert.Equal(t, "1.5", cell(1.5))
	assert.Equal(t, "yes", cell(true))
	assert.Empty(t, cell(nil))
	assert.Equal(t, `["a"]`, cell([]any{"a"}))
}
