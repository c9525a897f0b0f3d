package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/internal/repository"
	"github.com/benedict-erwin/blog-service/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  `Applies every embedded SQL migration to the configured PostgreSQL database`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get().Database
		if cfg.Driver != repository.DriverPostgres {
			return fmt.Errorf("migrations need database.driver=%s, got %q", repository.DriverPostgres, cfg.Driver)
		}
		return database.Migrate(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
