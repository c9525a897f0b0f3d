package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type (
	app struct {
		Name      string `json:"name" mapstructure:"name"`
		Env       string `json:"env" mapstructure:"env"`
		Port      int    `json:"port" mapstructure:"port"`
		Timezone  string `json:"timezone" mapstructure:"timezone"`
		Version   string `json:"version" mapstructure:"version"`
		StaticDir string `json:"static_dir" mapstructure:"static_dir"`
	}

	database struct {
		Driver      string `json:"driver" mapstructure:"driver"` // "memory" or "postgres"
		Host        string `json:"host" mapstructure:"host"`
		Port        int    `json:"port" mapstructure:"port"`
		User        string `json:"user" mapstructure:"user"`
		Password    string `json:"password" mapstructure:"password"`
		Name        string `json:"name" mapstructure:"name"`
		SSLMode     string `json:"ssl_mode" mapstructure:"ssl_mode"`
		MaxConns    int32  `json:"max_conns" mapstructure:"max_conns"`
		AutoMigrate bool   `json:"auto_migrate" mapstructure:"auto_migrate"`
	}

	redis struct {
		Enabled  bool   `json:"enabled" mapstructure:"enabled"`
		Mode     string `json:"mode" mapstructure:"mode"` // "single", "cluster"
		Host     string `json:"host" mapstructure:"host"`
		Port     int    `json:"port" mapstructure:"port"`
		Password string `json:"password" mapstructure:"password"`
		DB       int    `json:"db" mapstructure:"db"`
		Cluster  struct {
			Nodes    []string `json:"nodes" mapstructure:"nodes"`
			Password string   `json:"password" mapstructure:"password"`
		} `json:"cluster" mapstructure:"cluster"`
	}

	asynq struct {
		Enabled     bool `json:"enabled" mapstructure:"enabled"`
		Concurrency int  `json:"concurrency" mapstructure:"concurrency"`
		DB          int  `json:"db" mapstructure:"db"`
		PoolSize    int  `json:"pool_size" mapstructure:"pool_size"`
	}

	auth struct {
		SecretKey                string `json:"secret_key" mapstructure:"secret_key"`
		Algorithm                string `json:"algorithm" mapstructure:"algorithm"`
		AccessTokenExpireMinutes int    `json:"access_token_expire_minutes" mapstructure:"access_token_expire_minutes"`
	}

	cache struct {
		UserSize int `json:"user_size" mapstructure:"user_size"`
	}

	Config struct {
		App      app      `json:"app" mapstructure:"app"`
		Database database `json:"database" mapstructure:"database"`
		Redis    redis    `json:"redis" mapstructure:"redis"`
		Asynq    asynq    `json:"asynq" mapstructure:"asynq"`
		Auth     auth     `json:"auth" mapstructure:"auth"`
		Cache    cache    `json:"cache" mapstructure:"cache"`
	}

	// RedisConfig is an alias for the internal redis struct for external access
	RedisConfig = redis

	// DatabaseConfig is an alias for the internal database struct for external access
	DatabaseConfig = database
)

var cfg *Config

// Init loads configuration from .config file
func Init() error {
	viper.SetConfigName(".config")
	viper.SetConfigType("json")
	viper.AddConfigPath("./")
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// No file: run on defaults (memory storage, no redis)
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg = c
	return nil
}

// setDefaults mirrors Default() into viper so partial files stay usable
func setDefaults() {
	d := Default()
	viper.SetDefault("app.name", d.App.Name)
	viper.SetDefault("app.env", d.App.Env)
	viper.SetDefault("app.port", d.App.Port)
	viper.SetDefault("app.timezone", d.App.Timezone)
	viper.SetDefault("app.version", d.App.Version)
	viper.SetDefault("app.static_dir", d.App.StaticDir)
	viper.SetDefault("database.driver", d.Database.Driver)
	viper.SetDefault("database.port", d.Database.Port)
	viper.SetDefault("database.ssl_mode", d.Database.SSLMode)
	viper.SetDefault("database.max_conns", d.Database.MaxConns)
	viper.SetDefault("redis.mode", d.Redis.Mode)
	viper.SetDefault("redis.host", d.Redis.Host)
	viper.SetDefault("redis.port", d.Redis.Port)
	viper.SetDefault("asynq.concurrency", d.Asynq.Concurrency)
	viper.SetDefault("asynq.pool_size", d.Asynq.PoolSize)
	viper.SetDefault("auth.secret_key", d.Auth.SecretKey)
	viper.SetDefault("auth.algorithm", d.Auth.Algorithm)
	viper.SetDefault("auth.access_token_expire_minutes", d.Auth.AccessTokenExpireMinutes)
	viper.SetDefault("cache.user_size", d.Cache.UserSize)
}

// Default returns a development configuration backed by in-memory storage
func Default() *Config {
	c := &Config{}
	c.App.Name = "blog-service"
	c.App.Env = "dev"
	c.App.Port = 8000
	c.App.Timezone = "UTC"
	c.App.Version = "1.0.0"
	c.App.StaticDir = "files"

	c.Database.Driver = "memory"
	c.Database.Port = 5432
	c.Database.SSLMode = "disable"
	c.Database.MaxConns = 10

	c.Redis.Mode = "single"
	c.Redis.Host = "localhost"
	c.Redis.Port = 6379

	c.Asynq.Concurrency = 10
	c.Asynq.PoolSize = 20

	c.Auth.SecretKey = "change-me-in-.config"
	c.Auth.Algorithm = "HS256"
	c.Auth.AccessTokenExpireMinutes = 15

	c.Cache.UserSize = 256
	return c
}

// Persist writes one key to the config file, creating .config.json when
// none was loaded, and mirrors it into the current instance
func Persist(key string, value interface{}) error {
	viper.Set(key, value)
	if err := viper.WriteConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to write config: %w", err)
		}
		if err := viper.SafeWriteConfigAs(".config.json"); err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg = c
	return nil
}

// Set replaces the current configuration instance
func Set(c *Config) {
	cfg = c
}

// Get returns the current configuration instance
func Get() *Config {
	return cfg
}
