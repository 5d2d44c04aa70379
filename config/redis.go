package config

import "time"

// RedisConfig contains Redis configuration for the session store and view cache.
type RedisConfig struct {
	// Enabled switches session storage from in-process memory to Redis.
	Enabled            bool     `env:"ENABLED"              envDefault:"true"`
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
	SessionPrefix      string   `env:"SESSION_PREFIX"       envDefault:"cms:session:"`
}

// CacheConfig contains view cache configuration (Redis-based).
type CacheConfig struct {
	// ViewTTL bounds how long a rendered listing or detail view is served from cache.
	// Zero disables the view cache.
	ViewTTL time.Duration `env:"CACHE_VIEW_TTL" envDefault:"5m"`

	// ViewPrefix namespaces cached views in Redis.
	ViewPrefix string `env:"CACHE_VIEW_PREFIX" envDefault:"cms:view:"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	if c.ViewTTL < 0 {
		c.ViewTTL = 0
	}
	if c.ViewPrefix == "" {
		c.ViewPrefix = "cms:view:"
	}
}

// Enabled reports whether views should be cached at all.
func (c *CacheConfig) Enabled() bool {
	return c.ViewTTL > 0
}
