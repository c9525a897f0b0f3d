package asynq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/internal/constants"
	"github.com/benedict-erwin/blog-service/internal/jobs/articlepublished"
	"github.com/benedict-erwin/blog-service/internal/jobs/welcome"
	"github.com/benedict-erwin/blog-service/pkg/redis"
)

// mapStore is an in-process redis.Client
type mapStore struct {
	data map[string]string
}

func (m *mapStore) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	default:
		b, _ := json.Marshal(v)
		m.data[key] = string(b)
	}
	return nil
}

func (m *mapStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (m *mapStore) SetJSON(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return m.Set(ctx, key, b, exp)
}

func (m *mapStore) GetJSON(ctx context.Context, key string, dest interface{}) error {
	v, err := m.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(v), dest)
}

func (m *mapStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *mapStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

func (m *mapStore) Health() error { return nil }
func (m *mapStore) Close() error  { return nil }

func useStore(t *testing.T) *mapStore {
	t.Helper()
	store := &mapStore{data: map[string]string{}}
	prevStore := newWorkerStore
	newWorkerStore = func() (redis.Client, error) { return store, nil }
	prevPersist := persistConfig
	persistConfig = func(string, interface{}) error { return nil }

	prevCfg := config.Get()
	config.Set(config.Default())

	mu.Lock()
	workers = []WorkerConfig{}
	currentConcurrency = 0
	mu.Unlock()

	t.Cleanup(func() {
		newWorkerStore = prevStore
		persistConfig = prevPersist
		config.Set(prevCfg)
		mu.Lock()
		workers = []WorkerConfig{}
		currentConcurrency = 0
		mu.Unlock()
	})
	return store
}

func TestInitConcurrencyGeneratesFromRegistry(t *testing.T) {
	store := useStore(t)

	InitConcurrency()

	assert.Equal(t, 10, GetConcurrency())
	ws := GetWorkers()
	require.Len(t, ws, 2)
	assert.Equal(t, constants.QueueDefault, ws[0].Name)
	assert.Equal(t, 75, ws[0].Percentage)
	assert.Equal(t, constants.QueueLow, ws[1].Name)
	assert.Equal(t, 25, ws[1].Percentage)
	assert.NoError(t, ValidateWorkerConfig())

	assert.Equal(t, map[string]int{constants.QueueDefault: 7, constants.QueueLow: 2}, GenerateQueues())
	assert.Contains(t, store.data, workerConfigKey)
}

func TestInitConcurrencyPrefersStoredLayout(t *testing.T) {
	store := useStore(t)
	stored := []WorkerConfig{{Name: constants.QueueCritical, Percentage: 100, TaskTypes: []string{welcome.TypeUserWelcome}}}
	require.NoError(t, store.SetJSON(context.Background(), workerConfigKey, stored, 0))

	InitConcurrency()

	assert.Equal(t, stored, GetWorkers())
	assert.Equal(t, constants.QueueCritical, GetQueueForTaskType(welcome.TypeUserWelcome))
	assert.Equal(t, constants.QueueLow, GetQueueForTaskType(articlepublished.TypeArticlePublished))
}

func TestSetWorker(t *testing.T) {
	useStore(t)
	InitConcurrency()

	require.NoError(t, SetWorker(constants.QueueLow, 50, nil))
	assert.Error(t, ValidateWorkerConfig())

	require.NoError(t, SetWorker(constants.QueueDefault, 50, nil))
	assert.NoError(t, ValidateWorkerConfig())

	assert.Error(t, SetWorker("urgent", 10, nil))
	assert.Error(t, SetWorker(constants.QueueLow, 0, nil))

	require.NoError(t, ResetToDefault())
	assert.Equal(t, 75, GetWorkers()[0].Percentage)
}

func TestSetConcurrency(t *testing.T) {
	useStore(t)
	assert.Error(t, SetConcurrency(0))
	require.NoError(t, SetConcurrency(4))
	InitConcurrency()
	assert.Equal(t, 4, GetConcurrency())
}

func TestHeartbeat(t *testing.T) {
	useStore(t)

	assert.False(t, IsServerRunning())
	SetWorkerHeartbeat()
	assert.True(t, IsServerRunning())
	ClearServerReference()
	assert.False(t, IsServerRunning())
}

func TestHeartbeatWithoutRedis(t *testing.T) {
	useStore(t)
	newWorkerStore = func() (redis.Client, error) { return nil, errors.New("down") }
	assert.False(t, IsServerRunning())
}

func TestQueueWeightsFallback(t *testing.T) {
	assert.Equal(t, map[string]int{
		constants.QueueCritical: 6,
		constants.QueueDefault:  3,
		constants.QueueLow:      1,
	}, queueWeights(nil))
}

func TestNormalizePercentages(t *testing.T) {
	ws := normalizePercentages([]WorkerConfig{{Name: "a"}, {Name: "b"}, {Name: "c"}})
	assert.Equal(t, 34, ws[0].Percentage)
	assert.Equal(t, 33, ws[1].Percentage)
	assert.Equal(t, 33, ws[2].Percentage)

	ws = normalizePercentages([]WorkerConfig{{Name: "a", Percentage: 60}, {Name: "b", Percentage: 60}})
	assert.Equal(t, 100, ws[0].Percentage+ws[1].Percentage)
}

func TestDispatchJobWithoutClient(t *testing.T) {
	useStore(t)
	assert.Error(t, DispatchJob(nil))
	err := DispatchJob(&Payload{TaskType: welcome.TypeUserWelcome, Data: map[string]string{"a": "b"}})
	assert.ErrorIs(t, err, ErrDisabled)
}
