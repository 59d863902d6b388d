package main

import (
	"github.com/SeakMengs/AutoRFP/internal/config"
	"github.com/SeakMengs/AutoRFP/internal/database"
	"github.com/SeakMengs/AutoRFP/internal/env"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update every table",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := connect(cmd)
		if err != nil {
			return err
		}

		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS citext`).Error; err != nil {
			return err
		}

		return db.AutoMigrate(model.All()...)
	},
}

func connect(cmd *cobra.Command) (*gorm.DB, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	env.LoadEnv(envFile)

	cfg := config.GetConfig()
	logger := util.NewLogger(cfg.ENV)
	logger.Infof("Connecting to %s:%s/%s", cfg.DB.DB_HOST, cfg.DB.DB_PORT, cfg.DB.DB_DATABASE)

	return database.ConnectReturnGormDB(cfg.DB)
}
