package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func csrfHandler() http.Handler {
	return CSRFProtection(CSRFConfig{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
	}))
}

func csrfCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == DefaultCSRFCookieName {
			return c
		}
	}
	return nil
}

func TestCSRFProtection_GetRequestsAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	csrfHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	resp := w.Result()
	defer resp.Body.Close()
	c := csrfCookie(resp)
	if c == nil {
		t.Fatal("CSRF cookie not set")
	}
	if c.Value == "" {
		t.Error("CSRF token is empty")
	}
	if c.HttpOnly {
		t.Error("CSRF cookie must be readable by scripts")
	}
}

func TestCSRFProtection_ExistingCookieNotReplaced(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "existing"})
	w := httptest.NewRecorder()
	csrfHandler().ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	if c := csrfCookie(resp); c != nil {
		t.Fatalf("expected no new cookie, got %q", c.Value)
	}
}

func TestCSRFProtection_UnsafeMethods(t *testing.T) {
	tests := []struct {
		name   string
		method string
		cookie string
		header string
		want   int
	}{
		{name: "post without token", method: http.MethodPost, want: http.StatusForbidden},
		{name: "post with cookie only", method: http.MethodPost, cookie: "tok", want: http.StatusForbidden},
		{name: "post with mismatched header", method: http.MethodPost, cookie: "tok", header: "other", want: http.StatusForbidden},
		{name: "header without cookie", method: http.MethodDelete, header: "tok", want: http.StatusForbidden},
		{name: "post with matching header", method: http.MethodPost, cookie: "tok", header: "tok", want: http.StatusOK},
		{name: "put with matching header", method: http.MethodPut, cookie: "tok", header: "tok", want: http.StatusOK},
		{name: "head is safe", method: http.MethodHead, want: http.StatusOK},
		{name: "options is safe", method: http.MethodOptions, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set(DefaultCSRFHeaderName, tt.header)
			}
			w := httptest.NewRecorder()
			csrfHandler().ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestCSRFProtection_TokenEndpoint(t *testing.T) {
	w := httptest.NewRecorder()
	csrfHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/csrf", nil))

	resp := w.Result()
	defer resp.Body.Close()
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	c := csrfCookie(resp)
	if c == nil || body.Token == "" || body.Token != c.Value {
		t.Fatalf("expected token %q to match the cookie", body.Token)
	}
}

func TestGenerateCSRFToken_Unique(t *testing.T) {
	a, err := generateCSRFToken()
	if err != nil {
		t.Fatal(err)
	}
	b, err := generateCSRFToken()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("expected distinct tokens")
	}
}
