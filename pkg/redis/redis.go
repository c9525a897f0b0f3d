package redis

import (
	"fmt"
	"sync"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/pkg/logger"
)

var (
	mainClient Client
	mu         sync.RWMutex
)

// Init connects the main client when redis.enabled is set
func Init() error {
	cfg := config.Get().Redis
	if !cfg.Enabled {
		logger.Info().Msg("Redis disabled in config")
		return nil
	}

	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("invalid Redis configuration: %w", err)
	}

	client, err := NewClientForMain()
	if err != nil {
		return err
	}
	SetClient(client)

	logger.Info().
		Str("mode", cfg.Mode).
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("Redis client initialized successfully")
	return nil
}

// SetClient installs client as the main client
func SetClient(client Client) {
	mu.Lock()
	defer mu.Unlock()
	mainClient = client
}

// GetClient returns the main Redis client instance, nil when disabled
func GetClient() Client {
	mu.RLock()
	defer mu.RUnlock()
	return mainClient
}

// Close closes the main connection
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if mainClient == nil {
		return nil
	}
	err := mainClient.Close()
	mainClient = nil
	return err
}

// Health checks the main Redis connection
func Health() error {
	client := GetClient()
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	return client.Health()
}

func validateConfig(cfg config.RedisConfig) error {
	switch RedisMode(cfg.Mode) {
	case "", ModeSingle:
		if cfg.Host == "" {
			return fmt.Errorf("redis host not specified for single-node mode")
		}
		if cfg.Port <= 0 || cfg.Port > 65535 {
			return fmt.Errorf("invalid Redis port: %d", cfg.Port)
		}
	case ModeCluster:
		if len(cfg.Cluster.Nodes) == 0 {
			return fmt.Errorf("redis cluster nodes not specified")
		}
		for _, node := range cfg.Cluster.Nodes {
			if node == "" {
				return fmt.Errorf("empty Redis cluster node")
			}
		}
	default:
		return fmt.Errorf("unsupported Redis mode: %s", cfg.Mode)
	}
	return nil
}
