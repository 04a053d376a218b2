package main

import (
	"fmt"

	"biceppump/backend/internal/config"
	"biceppump/backend/internal/repository/postgres"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the postgres schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cfg.Database.Driver != config.DriverPostgres {
			return fmt.Errorf("migrations only apply to the postgres driver, got %q", cfg.Database.Driver)
		}

		if err := postgres.RunMigrations(cfg.Database.URI, cfg.Database.MigrationsPath); err != nil {
			return err
		}
		log.Infoln("migrations applied")
		return nil
	},
}
