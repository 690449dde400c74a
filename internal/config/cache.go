package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// EnvCacheEnabled overrides the cache enabled flag.
	EnvCacheEnabled = "CACHE_ENABLED"

	// EnvCacheAddr overrides the Redis address.
	EnvCacheAddr = "CACHE_ADDR"

	// EnvCachePassword overrides the Redis password.
	EnvCachePassword = "CACHE_PASSWORD"

	// EnvCacheTTL overrides the cache entry lifetime.
	EnvCacheTTL = "CACHE_TTL"

	// EnvCacheKeyPrefix overrides the cache key prefix.
	EnvCacheKeyPrefix = "CACHE_KEY_PREFIX"
)

// CacheConfig contains Redis cache configuration for storefront reads.
// When disabled, lookups go straight to the database.
type CacheConfig struct {
	Enabled   bool   `toml:"enabled"`
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	TTL       string `toml:"ttl"`
	KeyPrefix string `toml:"key_prefix"`
}

// TTLDuration parses and returns the cache entry lifetime as a time.Duration.
func (c *CacheConfig) TTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TTL)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the cache configuration.
func (c *CacheConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration, including the enabled flag.
func (c *CacheConfig) Merge(overlay *CacheConfig) {
	c.Enabled = overlay.Enabled

	if overlay.Addr != "" {
		c.Addr = overlay.Addr
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.TTL != "" {
		c.TTL = overlay.TTL
	}
	if overlay.KeyPrefix != "" {
		c.KeyPrefix = overlay.KeyPrefix
	}
}

func (c *CacheConfig) loadDefaults() {
	if c.Addr == "" {
		c.Addr = "localhost:6379"
	}
	if c.TTL == "" {
		c.TTL = "5m"
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "catalog"
	}
}

func (c *CacheConfig) loadEnv() {
	if v := os.Getenv(EnvCacheEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvCacheAddr); v != "" {
		c.Addr = v
	}
	if v := os.Getenv(EnvCachePassword); v != "" {
		c.Password = v
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		c.TTL = v
	}
	if v := os.Getenv(EnvCacheKeyPrefix); v != "" {
		c.KeyPrefix = v
	}
}

func (c *CacheConfig) validate() error {
	if _, err := time.ParseDuration(c.TTL); err != nil {
		return fmt.Errorf("invalid ttl: %w", err)
	}
	return nil
}
