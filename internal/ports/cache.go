package ports

import (
	"context"
	"time"
)

// ViewInvalidator drops cached renderings of console views after a mutation.
// Invalidating a path with no cached entry is a no-op.
type ViewInvalidator interface {
	Invalidate(ctx context.Context, paths ...string) error
}

// ViewCache stores rendered view payloads keyed by view path and variant (e.g. a query string).
type ViewCache interface {
	ViewInvalidator
	Get(ctx context.Context, path, variant string) ([]byte, bool, error)
	Put(ctx context.Context, path, variant string, body []byte, ttl time.Duration) error
}
