package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/docstore/document-service/internal/config"
	"github.com/docstore/document-service/pkg/logger"
	"github.com/docstore/document-service/pkg/metrics"
)

// keyPrefix namespaces document entries against other users of the same
// Redis instance.
const keyPrefix = "document:"

// RedisCache implements Cache on a Redis client. Short dial/op timeouts keep
// a degraded Redis from stalling the read/write path; on timeout an operation
// behaves exactly as unreachable (miss / no-op).
type RedisCache struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewRedisCache creates the client. Connection problems are not fatal here:
// the cache simply misses until Redis becomes reachable.
func NewRedisCache(cfg *config.CacheConfig) *RedisCache {
	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = 3600 * time.Second
	}
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = 2 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Host + ":" + cfg.Port,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dial,
		ReadTimeout:  dial,
		WriteTimeout: dial,
	})
	return &RedisCache{client: client, defaultTTL: ttl}
}

// NewRedisCacheFromClient wraps an existing client. Used by tests and by the
// wiring in main when the client is shared with the rate limiter.
func NewRedisCacheFromClient(client *redis.Client, defaultTTL time.Duration) *RedisCache {
	if defaultTTL <= 0 {
		defaultTTL = 3600 * time.Second
	}
	return &RedisCache{client: client, defaultTTL: defaultTTL}
}

// Client exposes the underlying client for shared consumers (rate limiter).
func (c *RedisCache) Client() *redis.Client { return c.client }

func key(id string) string { return keyPrefix + id }

func (c *RedisCache) Get(ctx context.Context, id string) (string, bool) {
	v, err := c.client.Get(ctx, key(id)).Result()
	if err != nil {
		if err != redis.Nil {
			metrics.CacheErrors.WithLabelValues("get").Inc()
			logger.Warnf("cache get %s: %v", id, err)
		}
		return "", false
	}
	return v, true
}

func (c *RedisCache) Set(ctx context.Context, id, content string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, key(id), content, ttl).Err(); err != nil {
		metrics.CacheErrors.WithLabelValues("set").Inc()
		logger.Warnf("cache set %s: %v", id, err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, id string) {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		metrics.CacheErrors.WithLabelValues("delete").Inc()
		logger.Warnf("cache invalidate %s: %v", id, err)
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Enabled() bool { return true }
