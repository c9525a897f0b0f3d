package health

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/internal/repository/memory"
	"github.com/benedict-erwin/blog-service/internal/storage"
	"github.com/benedict-erwin/blog-service/pkg/logger"
)

func setup(t *testing.T) {
	t.Helper()
	logger.SetOutput(io.Discard)
	config.Set(config.Default())
	storage.Set(memory.New())
	ClearCache()

	prevRedisEnabled, prevRedisPing := redisEnabled, redisPing
	prevAsynqEnabled, prevAsynqPing := asynqEnabled, asynqPing
	t.Cleanup(func() {
		redisEnabled, redisPing = prevRedisEnabled, prevRedisPing
		asynqEnabled, asynqPing = prevAsynqEnabled, prevAsynqPing
		storage.Set(nil)
		ClearCache()
	})
}

func TestReadinessWithDisabledServices(t *testing.T) {
	setup(t)

	status := CheckReadiness(context.Background())
	assert.Equal(t, "ready", status.Status)
	assert.Equal(t, StatusHealthy, status.Services["database"].Status)
	assert.Equal(t, "memory", status.Services["database"].Metadata["driver"])
	assert.Equal(t, StatusDisabled, status.Services["redis"].Status)
	assert.Equal(t, StatusDisabled, status.Services["asynq"].Status)
}

func TestReadinessFailsOnEnabledService(t *testing.T) {
	setup(t)
	redisEnabled = func() bool { return true }
	redisPing = func() error { return errors.New("connection refused") }

	status := CheckReadiness(context.Background())
	assert.Equal(t, "not_ready", status.Status)
	assert.Equal(t, StatusUnhealthy, status.Services["redis"].Status)
	assert.Equal(t, "connection refused", status.Services["redis"].Error)
}

func TestReadinessIsCached(t *testing.T) {
	setup(t)
	first := CheckReadiness(context.Background())

	asynqEnabled = func() bool { return true }
	asynqPing = func() error { return errors.New("down") }
	assert.Equal(t, first.Status, CheckReadiness(context.Background()).Status)

	ClearCache()
	assert.Equal(t, "not_ready", CheckReadiness(context.Background()).Status)
}

func TestCheckHealth(t *testing.T) {
	setup(t)

	status := CheckHealth(context.Background())
	require.NotNil(t, status)
	assert.Equal(t, StatusHealthy, status.Status)
	assert.Equal(t, "1.0.0", status.Version)
	assert.Positive(t, status.System.GoroutineCount)

	storage.Set(nil)
	ClearCache()
	status = CheckHealth(context.Background())
	assert.Equal(t, StatusDegraded, status.Status)
	assert.Equal(t, StatusUnhealthy, status.Services["database"].Status)
}
