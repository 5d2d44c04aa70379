package auth

import "context"

// sessionKey is an unexported context key type to avoid collisions across packages.
type sessionKey struct{}

// WithSession returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func WithSession(ctx context.Context, session *Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session carried by ctx and whether one was present.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	if ctx == nil {
		return nil, false
	}
	if session, ok := ctx.Value(sessionKey{}).(*Session); ok && session != nil {
		return session, true
	}
	return nil, false
}
