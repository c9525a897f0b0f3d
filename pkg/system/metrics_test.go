package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512B", FormatBytes(512))
	assert.Equal(t, "1.5KB", FormatBytes(1536))
	assert.Equal(t, "2.0MB", FormatBytes(2*1024*1024))
	assert.Equal(t, "3.0GB", FormatBytes(3*1024*1024*1024))
}

func TestMemoryUsage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meminfo")
	require.NoError(t, os.WriteFile(path, []byte("MemTotal:       1000 kB\nMemFree:  100 kB\nMemAvailable:    250 kB\n"), 0o644))

	usage, err := memoryUsage(path)
	require.NoError(t, err)
	assert.InDelta(t, 75.0, usage, 0.001)

	require.NoError(t, os.WriteFile(path, []byte("garbage\n"), 0o644))
	_, err = memoryUsage(path)
	assert.Error(t, err)
}

func TestCollect(t *testing.T) {
	m := Collect(t.TempDir())
	assert.Positive(t, m.GoroutineCount)
	assert.Positive(t, m.NumCPU)
	assert.NotEmpty(t, m.AppMemory.SystemMem)
}
