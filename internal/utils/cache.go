package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// All helpers tolerate a nil client so the server (and its tests) can run
// without Redis; caching then simply turns into a no-op.

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil // Caching disabled
	}
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil // Caching disabled
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes keys from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil // Caching disabled
	}
	return rdb.Del(ctx, keys...).Err() // Delete keys from Redis
}
