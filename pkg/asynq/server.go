package asynq

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/pkg/logger"
)

var (
	server            *asynq.Server
	serverRedisClient redis.UniversalClient
)

// InitServer builds the worker server. Single-node Redis gets a tuned pool;
// cluster mode lets asynq manage its own connections.
func InitServer() *asynq.Server {
	cfg := config.Get()
	log := logger.WithScope("InitServer")

	InitConcurrency()

	asynqCfg := asynq.Config{
		Concurrency:     GetConcurrency(),
		Queues:          GenerateQueues(),
		ShutdownTimeout: 30 * time.Second,
		Logger:          newAsynqLogger(),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			log.Error().
				Err(err).
				Str("task_type", task.Type()).
				Int("retried", retried).
				Bytes("payload", task.Payload()).
				Msg("Task processing failed")
		}),
	}

	if cfg.Redis.Mode == "cluster" {
		server = asynq.NewServer(RedisConnOpt(), asynqCfg)
	} else {
		poolSize := cfg.Asynq.PoolSize
		if poolSize <= 0 {
			poolSize = 10
		}
		serverRedisClient = redis.NewClient(&redis.Options{
			Addr:            fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password:        cfg.Redis.Password,
			DB:              cfg.Asynq.DB,
			PoolSize:        poolSize,
			ConnMaxIdleTime: 5 * time.Minute,
			ConnMaxLifetime: 30 * time.Minute,
			PoolTimeout:     10 * time.Second,
			MinIdleConns:    2,
			MaxIdleConns:    poolSize / 2,
			DialTimeout:     5 * time.Second,
			ReadTimeout:     3 * time.Second,
			WriteTimeout:    3 * time.Second,
			MaxRetries:      2,
		})
		server = asynq.NewServerFromRedisClient(serverRedisClient, asynqCfg)
	}

	SetCurrentServer(server)

	log.Info().
		Int("concurrency", asynqCfg.Concurrency).
		Interface("queues", asynqCfg.Queues).
		Str("mode", cfg.Redis.Mode).
		Msg("Asynq server initialized")
	return server
}

// GetServer returns the current Asynq server instance
func GetServer() *asynq.Server {
	return server
}

// CloseServer shuts the server down and closes its Redis client
func CloseServer() {
	if server != nil {
		server.Shutdown()
		logger.Info().Msg("Asynq server shut down")
		server = nil
	}

	if serverRedisClient != nil {
		if err := serverRedisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close server Redis client")
		}
		serverRedisClient = nil
	}
}

// asynqLogger forwards asynq's internal logging to zerolog
type asynqLogger struct {
	log *logger.ScopedLogger
}

func newAsynqLogger() *asynqLogger {
	return &asynqLogger{log: logger.WithScope("asynq")}
}

func (l *asynqLogger) Debug(args ...interface{}) { l.log.Debug().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...interface{})  { l.log.Info().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...interface{})  { l.log.Warn().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...interface{}) { l.log.Error().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Fatal(args ...interface{}) { l.log.Fatal().Msg(fmt.Sprint(args...)) }
