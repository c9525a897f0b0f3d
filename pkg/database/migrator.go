package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/pkg/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// versionTable records the applied migration number
const versionTable = "schema_version"

// Migrate applies every embedded migration not yet recorded
func Migrate(ctx context.Context, cfg config.DatabaseConfig) error {
	log := logger.WithScope("Migrate")

	conn, err := pgx.Connect(ctx, DSN(cfg))
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}
	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	to := int32(len(m.Migrations))
	if from == to {
		log.Info().Int32("version", to).Msg("Database schema up to date")
	} else {
		log.Info().Int32("from", from).Int32("to", to).Msg("Migrated database schema")
	}
	return nil
}
