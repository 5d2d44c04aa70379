// Package session adapts request-scoped sessions to ports.SessionSupplier.
package session

import (
	"context"
	"time"

	domainauth "github.com/simbrella/cms-console/internal/domain/auth"
	"github.com/simbrella/cms-console/internal/ports"
)

var _ ports.SessionSupplier = ContextSupplier{}

// ContextSupplier yields the session the HTTP middleware placed on the request context.
// An expired session reads as anonymous.
type ContextSupplier struct {
	Now func() time.Time
}

func (s ContextSupplier) Current(ctx context.Context) (*domainauth.Session, error) {
	sess, ok := domainauth.SessionFromContext(ctx)
	if !ok {
		return nil, nil
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	if sess.Expired(now()) {
		return nil, nil
	}
	return sess, nil
}
