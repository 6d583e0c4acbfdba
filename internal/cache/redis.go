// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/baghaus/marketplace-backend/internal/config"
)

// Client is a thin read-through cache over Redis. A nil client (Redis
// unreachable at boot) disables caching without affecting correctness.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(cfg config.RedisConfig) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logrus.WithError(err).Warn("Redis unavailable, caching disabled")
		return nil
	}

	return &Client{
		rdb: rdb,
		ttl: time.Duration(cfg.CacheTTL) * time.Second,
	}
}

// GetJSON unmarshals a cached value into dest. Returns false on miss,
// on decode failure, or when caching is disabled.
func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	data, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}

	return json.Unmarshal([]byte(data), dest) == nil
}

// SetJSON stores a value under key with the configured TTL. Failures are
// logged and ignored; the cache is never load-bearing.
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Debug("cache set failed")
	}
}

func (c *Client) Delete(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logrus.WithError(err).Debug("cache delete failed")
	}
}

func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
