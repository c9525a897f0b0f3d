package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/internal/storage"
	asynqPkg "github.com/benedict-erwin/blog-service/pkg/asynq"
	"github.com/benedict-erwin/blog-service/pkg/auth"
	"github.com/benedict-erwin/blog-service/pkg/logger"
	"github.com/benedict-erwin/blog-service/pkg/redis"
	"github.com/benedict-erwin/blog-service/pkg/utils"
)

var rootCmd = &cobra.Command{
	Use:   "blog-service",
	Short: "Blog HTTP Service",
	Long:  `Blog HTTP Service with users, articles and token authentication`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Failed to execute command")
		os.Exit(1)
	}
}

// init loads configuration and logging; everything that dials out waits
// for bootstrap so offline commands stay offline
func init() {
	// Initialize config
	if err := config.Init(); err != nil {
		panic(err)
	}

	// Initialize logger
	logger.Init(config.Get().App.Timezone, config.Get().App.Env)

	// Initialize utils
	if err := utils.InitTimezone(); err != nil {
		logger.Warn().Err(err).Msg("Timezone initialization failed, continuing with UTC")
	}

	// Add commands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(devCmd)
}

// bootstrap initializes every runtime dependency of the HTTP server
func bootstrap(ctx context.Context) {
	log := logger.WithScope("bootstrap")

	// Initialize Redis
	if err := redis.Init(); err != nil {
		log.Error().Err(err).Msg("Failed to initialize Redis")
		panic(err)
	}

	// Initialize storage
	if err := storage.Init(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to initialize storage")
		panic(err)
	}

	// Initialize asynq client
	if err := asynqPkg.InitClient(); err != nil {
		log.Error().Err(err).Msg("Failed to initialize Asynq client")
		// Continue without queue functionality
	}

	// Initialize worker configuration (loads from Redis)
	if asynqPkg.Enabled() {
		asynqPkg.InitConcurrency()
	}

	// Initialize auth system
	if err := auth.InitAuth(); err != nil {
		log.Error().Err(err).Msg("Failed to initialize Auth system")
		panic(err)
	}
}
