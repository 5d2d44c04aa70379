package httpx

import (
	"context"
	"net/http"

	domainauth "github.com/simbrella/cms-console/internal/domain/auth"
)

// SessionCookieName carries the opaque session ID.
const SessionCookieName = "session_id"

// SetSessionInContext returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	return domainauth.WithSession(ctx, session)
}

// GetSessionFromContext retrieves the session from the request context, or nil.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	if s, ok := domainauth.SessionFromContext(ctx); ok {
		return s
	}
	return nil
}

// sessionID returns the session cookie value, or "".
func sessionID(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
