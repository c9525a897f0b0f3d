package system

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"syscall"
)

// Metrics is a point-in-time snapshot of host and process resource usage
type Metrics struct {
	MemoryUsage    float64        `json:"memory_usage_system"`
	DiskUsage      float64        `json:"disk_usage"`
	GoroutineCount int            `json:"goroutine_count"`
	NumCPU         int            `json:"num_cpu"`
	AppMemory      AppMemoryStats `json:"memory_app"`
}

// AppMemoryStats holds Go runtime memory figures in human-readable form
type AppMemoryStats struct {
	CurrentAlloc string `json:"current_alloc"`
	TotalAlloc   string `json:"total_alloc"`
	SystemMem    string `json:"system_mem"`
	HeapInuse    string `json:"heap_inuse"`
	StackInuse   string `json:"stack_inuse"`
	GCCycles     uint32 `json:"gc_cycles"`
}

// Collect gathers metrics; host figures stay zero off Linux
func Collect(diskPath string) Metrics {
	m := Metrics{
		GoroutineCount: runtime.NumGoroutine(),
		NumCPU:         runtime.NumCPU(),
		AppMemory:      appMemoryStats(),
	}

	if runtime.GOOS != "linux" {
		return m
	}
	if mem, err := memoryUsage("/proc/meminfo"); err == nil {
		m.MemoryUsage = mem
	}
	if disk, err := diskUsage(diskPath); err == nil {
		m.DiskUsage = disk
	}
	return m
}

// memoryUsage returns used memory percent from a meminfo file
func memoryUsage(path string) (float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var total, available uint64
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "MemTotal:":
			total, _ = strconv.ParseUint(fields[1], 10, 64)
		case "MemAvailable:":
			available, _ = strconv.ParseUint(fields[1], 10, 64)
		}
		if total > 0 && available > 0 {
			break
		}
	}

	if total == 0 {
		return 0, fmt.Errorf("cannot parse memory info")
	}
	return float64(total-available) / float64(total) * 100, nil
}

func diskUsage(path string) (float64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, err
	}

	total := stat.Blocks * uint64(stat.Bsize)
	if total == 0 {
		return 0, nil
	}
	free := stat.Bavail * uint64(stat.Bsize)
	return float64(total-free) / float64(total) * 100, nil
}

func appMemoryStats() AppMemoryStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return AppMemoryStats{
		CurrentAlloc: FormatBytes(m.Alloc),
		TotalAlloc:   FormatBytes(m.TotalAlloc),
		SystemMem:    FormatBytes(m.Sys),
		HeapInuse:    FormatBytes(m.HeapInuse),
		StackInuse:   FormatBytes(m.StackInuse),
		GCCycles:     m.NumGC,
	}
}

// FormatBytes converts bytes to B, KB, MB or GB
func FormatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fGB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1fMB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1fKB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
