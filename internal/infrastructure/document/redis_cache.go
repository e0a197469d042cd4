package document

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/planwise-nz/planwise/pkg/errors"
)

// RedisCache backs the document cache with Redis so multiple instances share
// one extracted-text store.
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisCache wraps an existing client.  keyPrefix namespaces the keys,
// typically "planwise:".
func NewRedisCache(client *redis.Client, keyPrefix string) *RedisCache {
	return &RedisCache{client: client, keyPrefix: keyPrefix}
}

func (c *RedisCache) key(k string) string {
	return c.keyPrefix + "doc:" + k
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	text, err := c.client.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.Wrap(err, apperrors.ErrCodeCacheError, "redis get failed")
	}
	return text, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, text string, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(key), text, ttl).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "redis set failed")
	}
	return nil
}

func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"doc:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 100 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "redis del failed")
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "redis scan failed")
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "redis del failed")
		}
	}
	return nil
}

func (c *RedisCache) Backend() string { return "redis" }
