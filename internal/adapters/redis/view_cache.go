package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultViewPrefix namespaces cached views.
const DefaultViewPrefix = "cms:view:"

// MaxViewVariants bounds how many variants one view path holds.
const MaxViewVariants = 256

// putViewScript stores a variant unless the hash is full, and sets the expiry only
// when the hash has none, so the TTL runs from the path's first write.
// KEYS[1] hash; ARGV[1] variant, ARGV[2] body, ARGV[3] ttl in ms (0 = none), ARGV[4] limit.
var putViewScript = redis.NewScript(`
if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 0 and redis.call('HLEN', KEYS[1]) >= tonumber(ARGV[4]) then
  return 0
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
local ttl = tonumber(ARGV[3])
if ttl > 0 and redis.call('PTTL', KEYS[1]) < 0 then
  redis.call('PEXPIRE', KEYS[1], ttl)
end
return 1
`)

// ViewCache stores rendered views as one hash per view path, with one field per variant.
// Invalidating a path deletes the whole hash, dropping every variant at once.
type ViewCache struct {
	client redis.UniversalClient
	prefix string
}

// NewViewCache creates a ViewCache. An empty prefix means DefaultViewPrefix.
func NewViewCache(client redis.UniversalClient, prefix string) *ViewCache {
	if prefix == "" {
		prefix = DefaultViewPrefix
	}
	return &ViewCache{client: client, prefix: prefix}
}

// Get returns the cached body for path and variant.
func (c *ViewCache) Get(ctx context.Context, path, variant string) ([]byte, bool, error) {
	if path == "" {
		return nil, false, errors.New("path cannot be empty")
	}
	b, err := c.client.HGet(ctx, c.key(path), variant).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis hget: %w", err)
	}
	return b, true, nil
}

// Put stores body for path and variant. The TTL applies to the whole path and is not
// extended by later puts. New variants past MaxViewVariants are dropped.
func (c *ViewCache) Put(ctx context.Context, path, variant string, body []byte, ttl time.Duration) error {
	if path == "" {
		return errors.New("path cannot be empty")
	}
	err := putViewScript.Run(ctx, c.client, []string{c.key(path)},
		variant, body, ttl.Milliseconds(), MaxViewVariants).Err()
	if err != nil {
		return fmt.Errorf("redis put view: %w", err)
	}
	return nil
}

// Invalidate drops every cached variant of paths.
func (c *ViewCache) Invalidate(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			keys = append(keys, c.key(p))
		}
	}
	if len(keys) == 0 {
		return nil
	}
	// Keys can hash to different cluster slots, so delete them one by one in a pipeline.
	_, err := c.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, k := range keys {
			p.Del(ctx, k)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate views: %w", err)
	}
	return nil
}

// Health checks the health of the Redis connection.
func (c *ViewCache) Health(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *ViewCache) key(path string) string {
	return c.prefix + path
}
