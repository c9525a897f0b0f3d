package asynq

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hibiken/asynq"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/internal/constants"
	"github.com/benedict-erwin/blog-service/internal/jobs"
	"github.com/benedict-erwin/blog-service/pkg/logger"
	"github.com/benedict-erwin/blog-service/pkg/redis"
)

const (
	workerConfigKey   = "config"
	workerHeartbeat   = "heartbeat"
	heartbeatLifetime = 60 * time.Second
)

// WorkerConfig assigns a share of worker capacity to one queue
type WorkerConfig struct {
	Name       string   `json:"name"`
	Percentage int      `json:"percentage"`
	TaskTypes  []string `json:"task_types"`
}

var (
	mu                 sync.RWMutex
	currentConcurrency int
	workers            = []WorkerConfig{}
	currentServer      *asynq.Server
	serverRunning      bool

	// newWorkerStore and persistConfig are swapped in tests
	newWorkerStore = func() (redis.Client, error) { return redis.NewClientForWorker() }
	persistConfig  = config.Persist
)

// InitConcurrency loads the worker layout from Redis, generating it from
// the job registry when nothing is stored yet
func InitConcurrency() {
	mu.Lock()
	defer mu.Unlock()

	if currentConcurrency == 0 {
		currentConcurrency = config.Get().Asynq.Concurrency
		if currentConcurrency == 0 {
			currentConcurrency = 10
		}
	}

	if err := loadWorkers(); err != nil {
		logger.Warn().Err(err).Msg("Failed to load worker config from Redis, generating defaults")
	}

	if len(workers) == 0 {
		workers = generateDefaultWorkers()
		if err := saveWorkers(); err != nil {
			logger.Error().Err(err).Msg("Failed to save generated default workers to Redis")
		}
	}

	logger.Info().Int("concurrency", currentConcurrency).Int("workers_count", len(workers)).Msg("Worker configuration initialized")
}

// GetConcurrency returns current concurrency setting
func GetConcurrency() int {
	mu.RLock()
	defer mu.RUnlock()
	return currentConcurrency
}

// SetConcurrency updates concurrency and persists it to the config file
func SetConcurrency(concurrency int) error {
	if concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}
	mu.Lock()
	currentConcurrency = concurrency
	mu.Unlock()

	// Picked up by the next worker start
	if err := persistConfig("asynq.concurrency", concurrency); err != nil {
		logger.Error().Err(err).Msg("Failed to update config file with new concurrency")
		return err
	}
	logger.Info().Int("new_concurrency", concurrency).Msg("Concurrency updated in memory and config file")
	return nil
}

// SetWorker updates one queue's share and persists the layout
func SetWorker(name string, percentage int, taskTypes []string) error {
	if !constants.IsValidQueue(name) {
		return fmt.Errorf("unknown queue %q, valid queues: %v", name, constants.GetAllQueues())
	}
	if percentage <= 0 || percentage > 100 {
		return fmt.Errorf("percentage must be within 1..100, got %d", percentage)
	}

	mu.Lock()
	defer mu.Unlock()

	found := false
	for i := range workers {
		if workers[i].Name == name {
			workers[i].Percentage = percentage
			if len(taskTypes) > 0 {
				workers[i].TaskTypes = taskTypes
			}
			found = true
			break
		}
	}
	if !found {
		workers = append(workers, WorkerConfig{Name: name, Percentage: percentage, TaskTypes: taskTypes})
	}

	logger.Info().Str("worker", name).Int("percentage", percentage).Msg("Worker configuration updated")
	return saveWorkers()
}

// GetWorkers returns a copy of the current worker configurations
func GetWorkers() []WorkerConfig {
	mu.RLock()
	defer mu.RUnlock()
	result := make([]WorkerConfig, len(workers))
	copy(result, workers)
	return result
}

// GenerateQueues converts worker percentages into asynq queue weights
func GenerateQueues() map[string]int {
	mu.RLock()
	defer mu.RUnlock()
	return queueWeights(workers)
}

func queueWeights(ws []WorkerConfig) map[string]int {
	queues := make(map[string]int, len(ws))
	for _, w := range ws {
		weight := w.Percentage / 10
		if weight == 0 {
			weight = 1
		}
		queues[w.Name] = weight
	}
	if len(queues) == 0 {
		for _, q := range constants.GetAllQueues() {
			queues[q] = constants.GetQueuePriority(q)
		}
	}
	return queues
}

func queueFromWorkers(taskType string) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	for _, w := range workers {
		for _, t := range w.TaskTypes {
			if t == taskType {
				return w.Name, true
			}
		}
	}
	return "", false
}

// ValidateWorkerConfig reports layouts that do not sum to 100% or map a task twice
func ValidateWorkerConfig() error {
	mu.RLock()
	defer mu.RUnlock()

	total := 0
	owner := make(map[string]string)
	for _, w := range workers {
		total += w.Percentage
		for _, t := range w.TaskTypes {
			if prev, exists := owner[t]; exists {
				return fmt.Errorf("task type %s assigned to both %s and %s", t, prev, w.Name)
			}
			owner[t] = w.Name
		}
	}
	if total != 100 {
		return fmt.Errorf("worker percentages sum to %d, expected 100", total)
	}
	return nil
}

// ResetToDefault regenerates the layout from the job registry and persists it
func ResetToDefault() error {
	mu.Lock()
	defer mu.Unlock()
	workers = generateDefaultWorkers()
	logger.Info().Msg("Worker configuration reset to registry defaults")
	return saveWorkers()
}

// SetCurrentServer stores reference to current server
func SetCurrentServer(s *asynq.Server) {
	mu.Lock()
	defer mu.Unlock()
	currentServer = s
}

// SetServerRunning updates server running status
func SetServerRunning(running bool) {
	mu.Lock()
	defer mu.Unlock()
	serverRunning = running
	logger.Info().Bool("running", running).Msg("Asynq server status updated")
}

// IsServerRunning checks the local flag, then the Redis heartbeat of other processes
func IsServerRunning() bool {
	mu.RLock()
	local := currentServer != nil && serverRunning
	mu.RUnlock()
	if local {
		return true
	}

	client, err := newWorkerStore()
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot create Redis client for heartbeat check")
		return false
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	exists, err := client.Exists(ctx, workerHeartbeat)
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot check worker heartbeat")
		return false
	}
	return exists
}

// ClearServerReference clears server reference and heartbeat when stopped
func ClearServerReference() {
	mu.Lock()
	currentServer = nil
	serverRunning = false
	mu.Unlock()

	client, err := newWorkerStore()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create Redis client for heartbeat removal")
		return
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Delete(ctx, workerHeartbeat); err != nil {
		logger.Error().Err(err).Msg("Failed to remove worker heartbeat from Redis")
	}
}

// SetWorkerHeartbeat marks this worker alive for heartbeatLifetime
func SetWorkerHeartbeat() {
	client, err := newWorkerStore()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create Redis client for heartbeat")
		return
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Set(ctx, workerHeartbeat, time.Now().Unix(), heartbeatLifetime); err != nil {
		logger.Error().Err(err).Msg("Failed to set worker heartbeat in Redis")
	}
}

// saveWorkers persists workers, callers hold mu
func saveWorkers() error {
	client, err := newWorkerStore()
	if err != nil {
		return fmt.Errorf("failed to create Redis client for worker config: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.SetJSON(ctx, workerConfigKey, workers, 0); err != nil {
		return fmt.Errorf("failed to save worker config to Redis: %w", err)
	}
	return nil
}

// loadWorkers replaces workers with the stored layout, callers hold mu
func loadWorkers() error {
	client, err := newWorkerStore()
	if err != nil {
		return fmt.Errorf("failed to create Redis client for worker config: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var stored []WorkerConfig
	if err := client.GetJSON(ctx, workerConfigKey, &stored); err != nil {
		if redis.IsNil(err) {
			logger.Info().Msg("No worker configuration found in Redis")
			return nil
		}
		return fmt.Errorf("failed to load worker config from Redis: %w", err)
	}
	workers = stored
	return nil
}

// generateDefaultWorkers groups registered task types by queue
func generateDefaultWorkers() []WorkerConfig {
	registered, err := jobs.GetRegisteredJobs()
	if err != nil || len(registered) == 0 {
		logger.Warn().Err(err).Msg("No registered jobs, creating empty worker config")
		return []WorkerConfig{}
	}

	queueJobs := make(map[string][]string)
	for _, job := range registered {
		queueJobs[job.Queue] = append(queueJobs[job.Queue], job.TaskType)
	}

	names := make([]string, 0, len(queueJobs))
	for q := range queueJobs {
		names = append(names, q)
	}
	sort.Slice(names, func(i, j int) bool {
		return constants.GetQueuePriority(names[i]) > constants.GetQueuePriority(names[j])
	})

	defaults := make([]WorkerConfig, 0, len(names))
	for _, q := range names {
		defaults = append(defaults, WorkerConfig{
			Name:       q,
			Percentage: getDefaultPercentage(q, len(names)),
			TaskTypes:  queueJobs[q],
		})
	}
	return normalizePercentages(defaults)
}

func getDefaultPercentage(queue string, totalQueues int) int {
	switch queue {
	case constants.QueueCritical:
		return 60
	case constants.QueueDefault:
		return 30
	case constants.QueueLow:
		return 10
	default:
		return 100 / totalQueues
	}
}

// normalizePercentages scales percentages to sum to exactly 100
func normalizePercentages(ws []WorkerConfig) []WorkerConfig {
	if len(ws) == 0 {
		return ws
	}

	total := 0
	for _, w := range ws {
		total += w.Percentage
	}

	if total == 0 {
		even, remainder := 100/len(ws), 100%len(ws)
		for i := range ws {
			ws[i].Percentage = even
			if i < remainder {
				ws[i].Percentage++
			}
		}
		return ws
	}
	if total == 100 {
		return ws
	}

	actual := 0
	for i := range ws {
		ws[i].Percentage = ws[i].Percentage * 100 / total
		actual += ws[i].Percentage
	}
	ws[0].Percentage += 100 - actual
	return ws
}
