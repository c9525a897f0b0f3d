package asynq

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hibiken/asynq"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/internal/jobs"
	"github.com/benedict-erwin/blog-service/pkg/logger"
)

var (
	client   *asynq.Client
	clientMu sync.RWMutex
)

// RedisConnOpt builds the asynq connection options for the configured Redis mode
func RedisConnOpt() asynq.RedisConnOpt {
	cfg := config.Get()
	if cfg.Redis.Mode == "cluster" {
		return asynq.RedisClusterClientOpt{
			Addrs:    cfg.Redis.Cluster.Nodes,
			Password: cfg.Redis.Cluster.Password,
		}
	}
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Asynq.DB,
	}
}

// Enabled reports whether background jobs are switched on in config
func Enabled() bool {
	cfg := config.Get()
	return cfg != nil && cfg.Asynq.Enabled
}

// InitClient initializes the Asynq client when asynq.enabled is set
func InitClient() error {
	if !Enabled() {
		logger.Info().Msg("Asynq disabled in config, jobs will not be dispatched")
		return nil
	}

	cfg := config.Get()
	c := asynq.NewClient(RedisConnOpt())
	if err := c.Ping(); err != nil {
		_ = c.Close()
		return fmt.Errorf("failed to connect asynq client: %w", err)
	}

	clientMu.Lock()
	client = c
	clientMu.Unlock()

	logger.Info().
		Str("mode", cfg.Redis.Mode).
		Str("host", cfg.Redis.Host).
		Int("port", cfg.Redis.Port).
		Int("db", cfg.Asynq.DB).
		Msg("Asynq client initialized")
	return nil
}

// GetClient returns the current Asynq client instance
func GetClient() *asynq.Client {
	clientMu.RLock()
	defer clientMu.RUnlock()
	return client
}

// DispatchJob enqueues payload on the queue its task type is registered for
func DispatchJob(payload *Payload) error {
	if payload == nil {
		return fmt.Errorf("payload cannot be nil")
	}

	log := logger.WithScope("DispatchJob")

	data, err := json.Marshal(payload.Data)
	if err != nil {
		log.Error().Err(err).Str("taskType", payload.TaskType).Msg("Failed to marshal job payload")
		return err
	}

	c := GetClient()
	if c == nil {
		log.Debug().Str("taskType", payload.TaskType).Msg("Asynq client not initialized, job skipped")
		return ErrDisabled
	}

	task := asynq.NewTask(payload.TaskType, data)
	queue := GetQueueForTaskType(payload.TaskType)
	opts := []asynq.Option{asynq.Queue(queue)}
	if payload.TaskId != "" {
		opts = append(opts, asynq.TaskID(payload.TaskId), asynq.Unique(5*time.Minute))
	}

	if _, err = c.Enqueue(task, opts...); err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) || errors.Is(err, asynq.ErrTaskIDConflict) {
			log.Warn().
				Str("taskId", payload.TaskId).
				Str("taskType", payload.TaskType).
				Msg("Duplicate task ignored - already in queue")
			return nil
		}

		log.Error().
			Err(err).
			Str("taskId", payload.TaskId).
			Str("taskType", payload.TaskType).
			Msg("Failed to enqueue task")
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().
		Str("taskId", payload.TaskId).
		Str("taskType", payload.TaskType).
		Str("queue", queue).
		Msg("Task enqueued successfully")
	return nil
}

// GetQueueForTaskType prefers the worker override, then the job registry
func GetQueueForTaskType(taskType string) string {
	if name, ok := queueFromWorkers(taskType); ok {
		return name
	}
	return jobs.QueueFor(taskType)
}

// Health pings the queue backend
func Health() error {
	c := GetClient()
	if c == nil {
		return ErrDisabled
	}
	return c.Ping()
}

// CloseClient closes the Asynq client connection
func CloseClient() {
	clientMu.Lock()
	defer clientMu.Unlock()
	if client != nil {
		if err := client.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close Asynq client")
		} else {
			logger.Info().Msg("Asynq client closed")
		}
		client = nil
	}
}
