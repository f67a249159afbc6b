package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/moviemaze/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	config := r.config
	if _, err := os.Stat(r.configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", r.configPath)
		if err := shared.CreateConfigFile(r.configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", r.configPath)
		}
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	switch {
	case cmd.Bool("rollback"):
		r.logger.Info("rolling back latest migration")
		if err := shared.RollbackMigration(db); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
	case !cmd.Bool("status"):
		r.logger.Info("running database migrations")
		if err := shared.RunMigrations(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	statuses, err := shared.Migrations(db)
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	r.writePlainHeader("Migrations")
	for _, s := range statuses {
		mark := " "
		if s.Applied {
			mark = "✓"
		}
		r.writePlain("%s %03d %s\n", mark, s.Version, s.Name)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

// SetupConfig writes config.toml from the embedded template.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	if err := shared.CreateConfigFile(r.configPath); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}

	r.writePlain("✓ Config written to %s\n", r.configPath)
	r.writePlain("Add your TMDB API key under [catalog] before browsing movies.\n")
	return nil
}
