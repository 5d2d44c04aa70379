// Package memory provides in-process adapters used when Redis is disabled.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/simbrella/cms-console/internal/ports"
)

var _ ports.ViewCache = (*ViewCache)(nil)

// MaxViewVariants bounds how many variants one view path holds. Puts of new variants
// beyond it are dropped until the path expires or is invalidated.
const MaxViewVariants = 256

type viewEntry struct {
	variants  map[string][]byte
	expiresAt time.Time
}

// ViewCache keeps rendered views in a map guarded by a mutex.
// Like the Redis cache, the TTL applies to a whole path and runs from its first Put.
type ViewCache struct {
	mu    sync.Mutex
	views map[string]*viewEntry
	now   func() time.Time
}

// NewViewCache creates an empty ViewCache.
func NewViewCache() *ViewCache {
	return &ViewCache{views: make(map[string]*viewEntry), now: time.Now}
}

func (c *ViewCache) Get(_ context.Context, path, variant string) ([]byte, bool, error) {
	if path == "" {
		return nil, false, errors.New("path cannot be empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.views[path]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		delete(c.views, path)
		return nil, false, nil
	}
	b, ok := e.variants[variant]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (c *ViewCache) Put(_ context.Context, path, variant string, body []byte, ttl time.Duration) error {
	if path == "" {
		return errors.New("path cannot be empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e, ok := c.views[path]
	if ok && !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
		ok = false
	}
	if !ok {
		e = &viewEntry{variants: make(map[string][]byte)}
		if ttl > 0 {
			e.expiresAt = now.Add(ttl)
		}
		c.views[path] = e
	}
	if _, exists := e.variants[variant]; !exists && len(e.variants) >= MaxViewVariants {
		return nil
	}
	e.variants[variant] = append([]byte(nil), body...)
	return nil
}

func (c *ViewCache) Invalidate(_ context.Context, paths ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range paths {
		delete(c.views, p)
	}
	return nil
}
