package redis

import (
	"context"
	"time"
)

// RedisMode defines the Redis deployment mode
type RedisMode string

const (
	ModeSingle  RedisMode = "single"
	ModeCluster RedisMode = "cluster"
)

// Key prefixes keep logical areas apart, also where cluster mode has no DB selection
const (
	PrefixMain   = "blog:"
	PrefixWorker = "blog:worker:"
)

// Client defines the unified Redis client interface
type Client interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetJSON(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Health() error
	Close() error
}

// Options holds the resolved connection settings for one client
type Options struct {
	Mode         RedisMode
	Addr         string
	Nodes        []string
	Password     string
	DB           int
	KeyPrefix    string
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}
