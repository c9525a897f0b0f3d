package cmd

import (
	"github.com/spf13/cobra"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/pkg/logger"
	"github.com/benedict-erwin/blog-service/server"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP Server",
		Long:  `Starts the Blog HTTP Server`,
		Run: func(cmd *cobra.Command, args []string) {
			runServer(cmd, "serveCmd")
		},
	}

	devCmd = &cobra.Command{
		Use:   "dev",
		Short: "Start HTTP Server without overseer",
		Long:  `Starts the Blog HTTP Server in the foreground, for hot reload tools`,
		Run: func(cmd *cobra.Command, args []string) {
			runServer(cmd, "devCmd")
		},
	}
)

func runServer(cmd *cobra.Command, scope string) {
	bootstrap(cmd.Context())
	if err := server.Start(config.Get().App.Port); err != nil {
		logger.WithScope(scope).Error().Err(err).Msg("Failed to start server")
	}
}
