package main

import (
	"errors"
	"fmt"

	"github.com/kendall-kelly/snapfix-api/config"
	"github.com/kendall-kelly/snapfix-api/logger"
	"github.com/kendall-kelly/snapfix-api/models"
	"github.com/kendall-kelly/snapfix-api/seeds"
	"github.com/spf13/cobra"
)

var errSeedInProduction = errors.New("refusing to seed a production database")

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := bootstrap(); err != nil {
				return err
			}
			defer logger.Sync()

			if err := models.AutoMigrate(config.GetDB()); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			logger.GetLogger().Info("Database migration completed successfully")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with sample users, addresses, bookings and feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return seed(cfg)
		},
	}
}

// seed migrates then loads the sample data set
func seed(cfg *config.Config) error {
	if cfg.IsProduction() {
		return errSeedInProduction
	}

	db := config.GetDB()
	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := seeds.Run(db); err != nil {
		return err
	}
	logger.GetLogger().Info("Sample data loaded")
	return nil
}
