// Package storage selects and holds the process-wide repository.Store.
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/internal/repository"
	"github.com/benedict-erwin/blog-service/internal/repository/memory"
	"github.com/benedict-erwin/blog-service/internal/repository/postgres"
	"github.com/benedict-erwin/blog-service/pkg/database"
	"github.com/benedict-erwin/blog-service/pkg/logger"
)

var (
	current repository.Store
	mu      sync.RWMutex
)

// Init opens the store named by database.driver
func Init(ctx context.Context) error {
	cfg := config.Get()
	store, err := New(ctx, cfg.Database, cfg.App.Env)
	if err != nil {
		return err
	}
	Set(store)
	return nil
}

// New builds a store without installing it
func New(ctx context.Context, cfg config.DatabaseConfig, env string) (repository.Store, error) {
	log := logger.WithScope("storage")

	switch cfg.Driver {
	case "", repository.DriverMemory:
		log.Info().Msg("Using in-memory storage")
		return memory.New(), nil

	case repository.DriverPostgres:
		if cfg.AutoMigrate {
			if err := database.Migrate(ctx, cfg); err != nil {
				return nil, fmt.Errorf("auto migrate: %w", err)
			}
		}
		pool, err := database.NewPool(ctx, cfg, env)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("Using PostgreSQL storage")
		return postgres.New(pool), nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// Set installs store as the process-wide instance
func Set(store repository.Store) {
	mu.Lock()
	defer mu.Unlock()
	current = store
}

// Get returns the process-wide store
func Get() repository.Store {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Health pings the current store
func Health(ctx context.Context) error {
	store := Get()
	if store == nil {
		return fmt.Errorf("storage not initialized")
	}
	return store.Health(ctx)
}

// Close releases the current store
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		return nil
	}
	err := current.Close()
	current = nil
	return err
}
