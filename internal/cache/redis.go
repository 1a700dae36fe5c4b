// Package cache wraps the Redis client used for identity persistence,
// rate limiting and notification pub/sub.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a Redis client for addr. On connection failure it returns
// nil and the application runs without durability; every caller treats a nil
// client as "cache absent" and fails open.
func Connect(addr string) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, continuing without it", "addr", addr, "error", err)
		return nil
	}
	return client
}

// GetJSON reads key and unmarshals it into dest.
// Returns (false, nil) when the key is absent or the client is nil.
func GetJSON(ctx context.Context, client *redis.Client, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and writes it under key with the given TTL.
// No-op on a nil client.
func SetJSON(ctx context.Context, client *redis.Client, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Delete removes key. No-op on a nil client.
func Delete(ctx context.Context, client *redis.Client, key string) error {
	if client == nil {
		return nil
	}
	return client.Del(ctx, key).Err()
}
