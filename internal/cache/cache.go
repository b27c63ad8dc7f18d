package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// versionTTL bounds how long an invalidation marker outlives its entry.
const versionTTL = 24 * time.Hour

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A nil *Client is a valid, always-empty cache.
type Client struct {
	client *redis.Client
	prefix string
}

// New creates a new Redis client. Keys are namespaced with prefix.
func New(addr, password string, db int, prefix string) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts), prefix: prefix}
}

// Ping reports whether redis is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("cache disabled")
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		// redis.Nil and transport errors both read as a miss
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	_ = c.client.Set(ctx, c.prefix+key, value, ttl).Err()
	return nil
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	_ = c.client.Del(ctx, c.prefix+key).Err()
	return nil
}

// GetJSON decodes a cached value into dst. It reports false on a miss or
// when the cached payload no longer decodes.
func (c *Client) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	data, _ := c.Get(ctx, key)
	if data == nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// FillJSON calls load and caches its result under key. The write is dropped
// when Invalidate runs for key while load is in flight, so a slow reader
// cannot put back a record an update already evicted. Errors from load are
// returned; cache errors are not.
func (c *Client) FillJSON(ctx context.Context, key string, ttl time.Duration, load func() (interface{}, error)) error {
	if c == nil || c.client == nil {
		_, err := load()
		return err
	}

	loaded := false
	var loadErr error
	_ = c.client.Watch(ctx, func(tx *redis.Tx) error {
		loaded = true
		var value interface{}
		value, loadErr = load()
		if loadErr != nil {
			return nil
		}
		payload, err := json.Marshal(value)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.prefix+key, payload, ttl)
			return nil
		})
		return err
	}, c.versionKey(key))

	if !loaded {
		_, err := load()
		return err
	}
	return loadErr
}

// Invalidate removes key and bumps its version, cancelling any FillJSON
// for key that is still loading.
func (c *Client) Invalidate(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	_, _ = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.versionKey(key))
		pipe.Expire(ctx, c.versionKey(key), versionTTL)
		pipe.Del(ctx, c.prefix+key)
		return nil
	})
	return nil
}

func (c *Client) versionKey(key string) string {
	return c.prefix + key + ":v"
}

// SetJSON encodes value and stores it with TTL.
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, payload, ttl)
}
