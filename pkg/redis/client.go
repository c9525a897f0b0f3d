package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient implements Client for single-node and cluster deployments
// through go-redis' UniversalClient
type RedisClient struct {
	mode      RedisMode
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisClient connects and pings according to opts
func NewRedisClient(opts Options) (*RedisClient, error) {
	c := &RedisClient{mode: opts.Mode, keyPrefix: opts.KeyPrefix}

	switch opts.Mode {
	case ModeSingle:
		c.client = redis.NewClient(&redis.Options{
			Addr:         opts.Addr,
			Password:     opts.Password,
			DB:           opts.DB,
			PoolSize:     opts.PoolSize,
			DialTimeout:  opts.DialTimeout,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
		})
	case ModeCluster:
		c.client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        opts.Nodes,
			Password:     opts.Password,
			PoolSize:     opts.PoolSize,
			DialTimeout:  opts.DialTimeout,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
		})
	default:
		return nil, fmt.Errorf("unsupported Redis mode: %s", opts.Mode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.client.Ping(ctx).Err(); err != nil {
		_ = c.client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (%s): %w", opts.Mode, err)
	}
	return c, nil
}

func (r *RedisClient) buildKey(key string) string {
	return r.keyPrefix + key
}

// Set sets a key-value pair with expiration
func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, r.buildKey(key), value, expiration).Err()
}

// Get retrieves a value by key
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, r.buildKey(key)).Result()
}

// SetJSON stores JSON-serialized data with expiration
func (r *RedisClient) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return r.Set(ctx, key, data, expiration)
}

// GetJSON retrieves and deserializes JSON data
func (r *RedisClient) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return nil
}

// Delete removes one or more keys
func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	finalKeys := make([]string, len(keys))
	for i, key := range keys {
		finalKeys[i] = r.buildKey(key)
	}
	return r.client.Del(ctx, finalKeys...).Err()
}

// Exists checks if a key exists
func (r *RedisClient) Exists(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Exists(ctx, r.buildKey(key)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Health checks the Redis connection
func (r *RedisClient) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// IsNil reports whether err is the missing-key reply
func IsNil(err error) bool {
	return err == redis.Nil
}
