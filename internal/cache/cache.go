package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client caches upstream lookup results in redis. Every method fails safe: a
// redis error is indistinguishable from a miss, so an unavailable redis only
// costs callers the upstream round-trip. A nil *Client acts as an always
// empty cache.
type Client struct {
	client *redis.Client
}

// New connects a redis-backed cache client.
func New(addr, password string, db int) *Client {
	return &Client{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Get returns the cached value, or nil when the key is absent or redis is
// unreachable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors alike read as a miss
		return nil, nil
	}
	return res, nil
}

// Set stores value under key for ttl, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
	return nil
}
