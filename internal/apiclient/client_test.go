package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	domainauth "github.com/simbrella/cms-console/internal/domain/auth"
	"github.com/simbrella/cms-console/internal/domain/forms"
	"github.com/simbrella/cms-console/internal/domain/model"
	apperrors "github.com/simbrella/cms-console/internal/errors"
	mockauth "github.com/simbrella/cms-console/internal/mocks/auth"
	"github.com/simbrella/cms-console/internal/observability/statsd"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T, srv *httptest.Server, sess *domainauth.Session) (*Client, *statsd.Recorder) {
	t.Helper()
	rec := &statsd.Recorder{}
	c, err := New(Options{
		BaseURL:    srv.URL + "/api/",
		HTTPClient: srv.Client(),
		Sessions:   mockauth.StaticSupplier{Session: sess},
		Metrics:    rec,
		UserAgent:  "cms-console-test",
	})
	require.NoError(t, err)
	return c, rec
}

func writeJSON(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
	_, err = New(Options{BaseURL: "not a url"})
	require.Error(t, err)
}

func TestDo_AttachesBearerAndAccept(t *testing.T) {
	var gotAuth, gotAccept, gotUA, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		gotPath = r.URL.Path
		writeJSON(w, http.StatusOK, `{"success":true,"message":"ok","data":{"id":1}}`)
	}))
	defer srv.Close()

	c, rec := newTestClient(t, srv, &domainauth.Session{AccessToken: "tok123"})
	env, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/auth/me"})
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"id":1}`, string(env.Data))
	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "cms-console-test", gotUA)
	assert.Equal(t, "/api/auth/me", gotPath)

	counts := rec.Named("api.request")
	require.Len(t, counts, 1)
	assert.Equal(t, "success", counts[0].Tags["result"])
	assert.Equal(t, "/auth/me", counts[0].Tags["endpoint"])
}

func TestDo_NoAuthAndAnonymous(t *testing.T) {
	var headers []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = append(headers, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `{"success":true,"message":"","data":null}`)
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv, &domainauth.Session{AccessToken: "tok"})
	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/auth/login", NoAuth: true})
	require.NoError(t, err)

	anon, _ := newTestClient(t, srv, nil)
	_, err = anon.Do(context.Background(), Request{Path: "/admin/messages"})
	require.NoError(t, err)

	assert.Equal(t, []string{"", ""}, headers)
}

func TestDo_SupplierErrorIsAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true}`)
	}))
	defer srv.Close()

	c, err := New(Options{
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
		Sessions:   mockauth.StaticSupplier{Err: fmt.Errorf("store down")},
	})
	require.NoError(t, err)
	_, err = c.Do(context.Background(), Request{Path: "/admin/dashboard"})
	require.Error(t, err)
	assert.True(t, apperrors.IsAuth(err))
}

func TestDo_JSONBody(t *testing.T) {
	var ct string
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusCreated, `{"success":true,"message":"Message sent successfully","data":{"id":9}}`)
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv, nil)
	env, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/public/messages",
		Body:   JSONBody{Value: map[string]string{"email": "a@b.com"}},
		Header: http.Header{"Content-Type": {"text/plain"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Message sent successfully", env.Message)
	assert.Equal(t, "application/json", ct)
	assert.Equal(t, "a@b.com", body["email"])
}

func TestDo_MultipartUpdate(t *testing.T) {
	var (
		method, path, override, ct, title, filename string
		fileBytes                                   []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		override = r.URL.Query().Get("_method")
		ct = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			title = r.FormValue("title")
			if f, hdr, err := r.FormFile("banner_image"); err == nil {
				filename = hdr.Filename
				fileBytes, _ = io.ReadAll(f)
				_ = f.Close()
			}
		}
		writeJSON(w, http.StatusOK, `{"success":true,"message":"Blog post updated successfully","data":{"id":7}}`)
	}))
	defer srv.Close()

	in := forms.NewInput().
		Set("title", "Updated").
		AddFile("banner_image", forms.File{Filename: "banner.png", ContentType: "image/png", Content: []byte("PNG")})

	c, _ := newTestClient(t, srv, &domainauth.Session{AccessToken: "tok"})
	_, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/admin/blog-posts/7",
		Query:  url.Values{"_method": {"PUT"}},
		Body:   MultipartBody{Form: in},
		Header: http.Header{"Content-Type": {"multipart/form-data"}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/api/admin/blog-posts/7", path)
	assert.Equal(t, "PUT", override)
	assert.Contains(t, ct, "multipart/form-data; boundary=")
	assert.Equal(t, "Updated", title)
	assert.Equal(t, "banner.png", filename)
	assert.Equal(t, []byte("PNG"), fileBytes)
}

func TestDo_QueryAndMeta(t *testing.T) {
	var rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, `{"success":true,"message":"","data":[],"meta":{"current_page":2,"last_page":5,"per_page":10,"total":42}}`)
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv, nil)
	env, err := c.Do(context.Background(), Request{
		Path:  "/public/blog-posts",
		Query: model.ListParams{Page: 2, PerPage: 10}.Query(),
	})
	require.NoError(t, err)
	assert.Equal(t, "page=2&per_page=10", rawQuery)
	require.NotNil(t, env.Meta)
	assert.Equal(t, model.PageMeta{CurrentPage: 2, LastPage: 5, PerPage: 10, Total: 42}, *env.Meta)
}

func TestDo_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		handle http.HandlerFunc
		check  func(t *testing.T, err error)
	}{
		{
			name: "non json",
			handle: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				_, _ = io.WriteString(w, "<html>oops</html>")
			},
			check: func(t *testing.T, err error) { assert.True(t, apperrors.IsNonJSON(err)) },
		},
		{
			name: "missing content type",
			handle: func(w http.ResponseWriter, _ *http.Request) {
				w.Header()["Content-Type"] = nil
				w.WriteHeader(http.StatusNoContent)
			},
			check: func(t *testing.T, err error) { assert.True(t, apperrors.IsNonJSON(err)) },
		},
		{
			name: "malformed",
			handle: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, `{"success":tru`)
			},
			check: func(t *testing.T, err error) { assert.True(t, apperrors.IsMalformed(err)) },
		},
		{
			name: "api error with fields",
			handle: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusUnprocessableEntity, `{"success":false,"message":"The title field is required.","errors":{"title":["The title field is required."],"slug":"taken"}}`)
			},
			check: func(t *testing.T, err error) {
				require.True(t, apperrors.IsAPI(err))
				var appErr *apperrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
				assert.Equal(t, "The title field is required.", appErr.Message)
				assert.Equal(t, map[string][]string{
					"title": {"The title field is required."},
					"slug":  {"taken"},
				}, apperrors.FieldErrors(err))
			},
		},
		{
			name: "api error without message",
			handle: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusInternalServerError, `{"success":false,"errors":"boom"}`)
			},
			check: func(t *testing.T, err error) {
				require.True(t, apperrors.IsAPI(err))
				assert.Nil(t, apperrors.FieldErrors(err))
				assert.Equal(t, "request failed with status 500", apperrors.Message(err))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handle)
			defer srv.Close()
			c, rec := newTestClient(t, srv, nil)
			_, err := c.Do(context.Background(), Request{Path: "/public/careers"})
			require.Error(t, err)
			tt.check(t, err)
			counts := rec.Named("api.request")
			require.Len(t, counts, 1)
			assert.Equal(t, "error", counts[0].Tags["result"])
		})
	}
}

func TestDo_Transport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, _ := newTestClient(t, srv, nil)
	srv.Close()

	_, err := c.Do(context.Background(), Request{Path: "/public/careers"})
	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
}

func TestDo_TimeoutIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		writeJSON(w, http.StatusOK, `{"success":true}`)
	}))
	defer srv.Close()

	hc := srv.Client()
	hc.Timeout = 50 * time.Millisecond
	c, err := New(Options{BaseURL: srv.URL, HTTPClient: hc})
	require.NoError(t, err)

	_, err = c.Do(context.Background(), Request{Path: "/admin/dashboard"})
	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
}

func TestDo_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true}`)
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Do(ctx, Request{Path: "/admin/dashboard"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCanceled(err))
}

func TestDecode(t *testing.T) {
	env := &Envelope[json.RawMessage]{Success: true, Message: "ok", Data: json.RawMessage(`[{"id":1,"title":"a","body":"b","status":"draft"}]`)}
	posts, err := Decode[[]model.BlogPost](env)
	require.NoError(t, err)
	require.Len(t, posts.Data, 1)
	assert.Equal(t, int64(1), posts.Data[0].ID)
	assert.Equal(t, "ok", posts.Message)

	empty, err := Decode[model.BlogPost](&Envelope[json.RawMessage]{Success: true, Data: json.RawMessage("null")})
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Data.ID)

	_, err = Decode[model.BlogPost](&Envelope[json.RawMessage]{Data: json.RawMessage(`"x"`)})
	require.Error(t, err)

	none, err := Decode[model.BlogPost](nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestEndpointTag(t *testing.T) {
	assert.Equal(t, "/admin/blog-posts/:id/restore", EndpointTag("/admin/blog-posts/7/restore"))
	assert.Equal(t, "/admin/blog-posts/:id", EndpointTag("/admin/blog-posts/7?_method=PUT"))
	assert.Equal(t, "/public/careers", EndpointTag("/public/careers"))
}
