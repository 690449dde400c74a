package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/url"
	"time"

	"github.com/JaimeStill/catalog-admin/internal/config"
	"github.com/JaimeStill/catalog-admin/internal/lifecycle"
	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedis creates a Redis-backed cache from config. The connection is
// verified during Start; a failed ping disables nothing, it just logs and
// every read misses until Redis recovers.
func NewRedis(cfg *config.CacheConfig, logger *slog.Logger) System {
	return &redisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
		}),
		prefix: cfg.KeyPrefix,
		ttl:    cfg.TTLDuration(),
		logger: logger.With("system", "cache"),
	}
}

func (c *redisCache) Start(lc *lifecycle.Coordinator) error {
	ctx, cancel := context.WithTimeout(lc.Context(), 5*time.Second)
	defer cancel()

	if err := c.client.Ping(ctx).Err(); err != nil {
		c.logger.Warn("redis unreachable, running uncached", "error", err)
	} else {
		c.logger.Info("cache ready", "prefix", c.prefix)
	}

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := c.client.Close(); err != nil {
			c.logger.Error("cache close error", "error", err)
		}
	})

	return nil
}

func (c *redisCache) GetProduct(ctx context.Context, slug string) ([]byte, bool) {
	return c.get(ctx, c.productKey(slug))
}

func (c *redisCache) SetProduct(ctx context.Context, slug string, payload []byte) {
	c.set(ctx, c.productKey(slug), payload)
}

func (c *redisCache) GetList(ctx context.Context, key string) ([]byte, bool) {
	return c.get(ctx, c.listKey(key))
}

func (c *redisCache) SetList(ctx context.Context, key string, payload []byte) {
	full := c.listKey(key)
	c.set(ctx, full, payload)

	// Track list keys so invalidation can clear them without a scan.
	if err := c.client.SAdd(ctx, c.listSetKey(), full).Err(); err != nil {
		c.logger.Warn("cache track failed", "key", full, "error", err)
	}
}

func (c *redisCache) InvalidateProducts(ctx context.Context, slugs ...string) {
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		keys = append(keys, c.productKey(slug))
	}

	lists, err := c.client.SMembers(ctx, c.listSetKey()).Result()
	if err != nil {
		c.logger.Warn("cache list lookup failed", "error", err)
	} else {
		keys = append(keys, lists...)
		keys = append(keys, c.listSetKey())
	}

	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache invalidation failed", "error", err)
	}
}

func (c *redisCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	pattern := c.prefix + ":*"

	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			c.logger.Warn("cache scan failed", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.logger.Warn("cache invalidation failed", "error", err)
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}

func (c *redisCache) get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return payload, true
}

func (c *redisCache) set(ctx context.Context, key string, payload []byte) {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

func (c *redisCache) productKey(slug string) string {
	return c.prefix + ":product:" + slug
}

func (c *redisCache) listKey(key string) string {
	return c.prefix + ":products:" + key
}

func (c *redisCache) listSetKey() string {
	return c.prefix + ":products:keys"
}

// ListKey derives a stable cache key from list query parameters. Encode
// sorts by key, so equivalent queries hash identically.
func ListKey(values url.Values) string {
	sum := sha256.Sum256([]byte(values.Encode()))
	return hex.EncodeToString(sum[:8])
}
