package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/internal/storage"
	"github.com/benedict-erwin/blog-service/pkg/asynq"
	"github.com/benedict-erwin/blog-service/pkg/redis"
	"github.com/benedict-erwin/blog-service/pkg/system"
	"github.com/benedict-erwin/blog-service/pkg/utils"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDegraded  = "degraded"
	StatusDisabled  = "disabled"
)

var (
	startTime = time.Now()

	healthCache      *HealthStatus
	healthCacheTime  time.Time
	healthCacheMutex sync.RWMutex

	readinessCache      *ReadinessStatus
	readinessCacheTime  time.Time
	readinessCacheMutex sync.RWMutex

	cacheValidDuration = 10 * time.Second

	// probes are swapped in tests
	databasePing = func(ctx context.Context) error { return storage.Health(ctx) }
	redisEnabled = func() bool { return config.Get().Redis.Enabled }
	redisPing    = redis.Health
	asynqEnabled = asynq.Enabled
	asynqPing    = asynq.Health
)

type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Uptime    string                   `json:"uptime"`
	Services  map[string]ServiceHealth `json:"services"`
	System    SystemHealth             `json:"system"`
}

type ServiceHealth struct {
	Status       string                 `json:"status"`
	ResponseTime string                 `json:"response_time"`
	LastCheck    time.Time              `json:"last_check"`
	Error        string                 `json:"error,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

type SystemHealth struct {
	MemoryUsageSystem string                `json:"memory_usage_system"`
	MemoryApp         system.AppMemoryStats `json:"memory_app"`
	DiskUsage         string                `json:"disk_usage"`
	GoroutineCount    int                   `json:"goroutine_count"`
	NumCPU            int                   `json:"num_cpu"`
}

type ReadinessStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Services  map[string]ServiceHealth `json:"services"`
}

// CheckHealth reports every dependency plus process metrics, cached for 10s
func CheckHealth(ctx context.Context) *HealthStatus {
	healthCacheMutex.RLock()
	if healthCache != nil && time.Since(healthCacheTime) < cacheValidDuration {
		cached := *healthCache
		healthCacheMutex.RUnlock()
		return &cached
	}
	healthCacheMutex.RUnlock()

	services := checkServices(ctx)
	status := &HealthStatus{
		Status:    StatusHealthy,
		Timestamp: utils.Now(),
		Version:   config.Get().App.Version,
		Uptime:    time.Since(startTime).Round(time.Second).String(),
		Services:  services,
		System:    systemHealth(),
	}
	if !allUsable(services) {
		status.Status = StatusDegraded
	}

	healthCacheMutex.Lock()
	healthCache = status
	healthCacheTime = time.Now()
	healthCacheMutex.Unlock()

	return status
}

// CheckReadiness reports whether every enabled dependency answers, cached for 10s
func CheckReadiness(ctx context.Context) *ReadinessStatus {
	readinessCacheMutex.RLock()
	if readinessCache != nil && time.Since(readinessCacheTime) < cacheValidDuration {
		cached := *readinessCache
		readinessCacheMutex.RUnlock()
		return &cached
	}
	readinessCacheMutex.RUnlock()

	services := checkServices(ctx)
	status := &ReadinessStatus{
		Status:    "ready",
		Timestamp: utils.Now(),
		Services:  services,
	}
	if !allUsable(services) {
		status.Status = "not_ready"
	}

	readinessCacheMutex.Lock()
	readinessCache = status
	readinessCacheTime = time.Now()
	readinessCacheMutex.Unlock()

	return status
}

// allUsable treats disabled services as fine, they were switched off on purpose
func allUsable(services map[string]ServiceHealth) bool {
	for _, s := range services {
		if s.Status != StatusHealthy && s.Status != StatusDisabled {
			return false
		}
	}
	return true
}

func checkServices(ctx context.Context) map[string]ServiceHealth {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return map[string]ServiceHealth{
		"database": checkDatabase(ctx),
		"redis":    probe(redisEnabled(), redisPing),
		"asynq":    probe(asynqEnabled(), asynqPing),
	}
}

func checkDatabase(ctx context.Context) ServiceHealth {
	h := probe(true, func() error { return databasePing(ctx) })
	if s := storage.Get(); s != nil {
		h.Metadata = map[string]interface{}{"driver": s.Driver()}
	}
	return h
}

func probe(enabled bool, ping func() error) ServiceHealth {
	if !enabled {
		return ServiceHealth{
			Status:       StatusDisabled,
			ResponseTime: "0s",
			LastCheck:    utils.Now(),
		}
	}

	start := time.Now()
	err := ping()
	h := ServiceHealth{
		Status:       StatusHealthy,
		ResponseTime: time.Since(start).String(),
		LastCheck:    utils.Now(),
	}
	if err != nil {
		h.Status = StatusUnhealthy
		h.Error = err.Error()
	}
	return h
}

func systemHealth() SystemHealth {
	m := system.Collect("/")
	return SystemHealth{
		MemoryUsageSystem: fmt.Sprintf("%.1f%%", m.MemoryUsage),
		MemoryApp:         m.AppMemory,
		DiskUsage:         fmt.Sprintf("%.1f%%", m.DiskUsage),
		GoroutineCount:    m.GoroutineCount,
		NumCPU:            m.NumCPU,
	}
}

// ClearCache drops both cached results
func ClearCache() {
	healthCacheMutex.Lock()
	healthCache = nil
	healthCacheTime = time.Time{}
	healthCacheMutex.Unlock()

	readinessCacheMutex.Lock()
	readinessCache = nil
	readinessCacheTime = time.Time{}
	readinessCacheMutex.Unlock()
}
