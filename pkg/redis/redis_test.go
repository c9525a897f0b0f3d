package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/benedict-erwin/blog-service/config"
)

func TestValidateConfig(t *testing.T) {
	single := config.RedisConfig{Mode: "single", Host: "localhost", Port: 6379}
	assert.NoError(t, validateConfig(single))

	noHost := single
	noHost.Host = ""
	assert.Error(t, validateConfig(noHost))

	badPort := single
	badPort.Port = 70000
	assert.Error(t, validateConfig(badPort))

	cluster := config.RedisConfig{Mode: "cluster"}
	assert.Error(t, validateConfig(cluster))
	cluster.Cluster.Nodes = []string{"a:7000", ""}
	assert.Error(t, validateConfig(cluster))
	cluster.Cluster.Nodes = []string{"a:7000", "b:7001"}
	assert.NoError(t, validateConfig(cluster))

	assert.Error(t, validateConfig(config.RedisConfig{Mode: "sentinel"}))
}

func TestBuildOptions(t *testing.T) {
	cfg := config.RedisConfig{Mode: "single", Host: "cache", Port: 6380, Password: "pw"}
	opts := buildOptions(cfg, 3, PrefixWorker)
	assert.Equal(t, ModeSingle, opts.Mode)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 3, opts.DB)
	assert.Equal(t, PrefixWorker, opts.KeyPrefix)

	cfg.Mode = "cluster"
	cfg.Cluster.Nodes = []string{"n1:7000"}
	cfg.Cluster.Password = "cpw"
	opts = buildOptions(cfg, 3, PrefixWorker)
	assert.Equal(t, ModeCluster, opts.Mode)
	assert.Equal(t, []string{"n1:7000"}, opts.Nodes)
	assert.Equal(t, "cpw", opts.Password)
	assert.Equal(t, 0, opts.DB)
	assert.Equal(t, PrefixWorker, opts.KeyPrefix)
}
