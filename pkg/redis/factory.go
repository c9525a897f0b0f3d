package redis

import (
	"fmt"
	"time"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/pkg/logger"
)

const defaultTimeout = 5 * time.Second

// buildOptions resolves connection settings for one logical area
func buildOptions(cfg config.RedisConfig, db int, prefix string) Options {
	mode := RedisMode(cfg.Mode)
	if mode == "" {
		mode = ModeSingle
	}

	opts := Options{
		Mode:         mode,
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           db,
		KeyPrefix:    prefix,
		PoolSize:     10,
		DialTimeout:  defaultTimeout,
		ReadTimeout:  defaultTimeout,
		WriteTimeout: defaultTimeout,
	}
	if mode == ModeCluster {
		opts.Nodes = cfg.Cluster.Nodes
		opts.Password = cfg.Cluster.Password
		opts.DB = 0
	}
	return opts
}

// NewClientForMain returns Redis client for main application data
func NewClientForMain() (Client, error) {
	cfg := config.Get().Redis
	client, err := NewRedisClient(buildOptions(cfg, cfg.DB, PrefixMain))
	if err != nil {
		return nil, fmt.Errorf("failed to create main Redis client: %w", err)
	}
	logger.Info().Str("mode", cfg.Mode).Int("db", cfg.DB).Msg("Main Redis client initialized")
	return client, nil
}

// NewClientForWorker returns a client on the asynq database for worker
// settings and heartbeats
func NewClientForWorker() (Client, error) {
	cfg := config.Get()
	client, err := NewRedisClient(buildOptions(cfg.Redis, cfg.Asynq.DB, PrefixWorker))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker Redis client: %w", err)
	}
	logger.Debug().Str("mode", cfg.Redis.Mode).Int("db", cfg.Asynq.DB).Msg("Worker Redis client initialized")
	return client, nil
}
