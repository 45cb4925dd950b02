package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache is a JSON read-through cache over Redis. A Cache without a client
// never hits and silently drops writes, so callers need no nil checks.
type Cache struct {
	rdb *redis.Client
}

// NewCache wraps rdb, which may be nil
func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Enabled reports whether a Redis client is attached
func (c *Cache) Enabled() bool { return c != nil && c.rdb != nil }

// Get retrieves a value from Redis and unmarshals it into dest
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// Set stores a value in Redis with a specified TTL
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return c.rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// Delete deletes keys from Redis
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err() // Delete keys from Redis
}
