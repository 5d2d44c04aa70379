package ports

// Package ports defines interfaces (hexagonal ports) for session and cache behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/simbrella/cms-console/internal/domain/auth"
)

// SessionStore persists and retrieves user sessions.
// Get returns a not_found AppError for missing or expired sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionSupplier yields the session of the current caller.
// A nil session with a nil error means the caller is anonymous.
type SessionSupplier interface {
	Current(ctx context.Context) (*domainauth.Session, error)
}
