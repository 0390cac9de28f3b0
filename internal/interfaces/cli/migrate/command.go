// Package migrate implements database migration commands backed by
// golang-migrate.
package migrate

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/tripdesk-hq/tripdesk/internal/infrastructure/config"
	"github.com/tripdesk-hq/tripdesk/internal/shared/logger"
)

var (
	env   string
	steps int
)

const migrationsPath = "file://internal/infrastructure/persistence/migrations"

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply pending migrations, roll back, and inspect the current version.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newVersionCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator()
			if err != nil {
				return err
			}
			defer m.Close()

			if err := m.Up(); err != nil {
				if errors.Is(err, migrate.ErrNoChange) {
					logger.Info("no pending migrations")
					return nil
				}
				return fmt.Errorf("migration up failed: %w", err)
			}
			logger.Info("migrations applied")
			return nil
		},
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator()
			if err != nil {
				return err
			}
			defer m.Close()

			if err := m.Steps(-steps); err != nil {
				return fmt.Errorf("migration down failed: %w", err)
			}
			logger.Info("migrations rolled back", "steps", steps)
			return nil
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator()
			if err != nil {
				return err
			}
			defer m.Close()

			version, dirty, err := m.Version()
			if err != nil {
				if errors.Is(err, migrate.ErrNilVersion) {
					logger.Info("no migrations applied yet")
					return nil
				}
				return fmt.Errorf("failed to read migration version: %w", err)
			}
			logger.Info("migration version", "version", version, "dirty", dirty)
			return nil
		},
	}
}

func newMigrator() (*migrate.Migrate, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	dsn := fmt.Sprintf("mysql://%s", cfg.Database.GetDSN())
	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}
