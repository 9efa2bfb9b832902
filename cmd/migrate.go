package main

import (
	"context"
	"time"

	"github.com/Payphone-Digital/admin-panel/pkg/database"
	"github.com/Payphone-Digital/admin-panel/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer database.CloseDB(db)

		return migrate(db)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the super admin and its first post",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer database.CloseDB(db)

		if err := migrate(db); err != nil {
			return err
		}
		return seed(cmd.Context(), db)
	},
}

func openDatabase(ctx context.Context) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		logger.GetLogger().Error("Failed to connect to database",
			zap.String("driver", cfg.Database.Driver),
			zap.Error(err),
		)
		return nil, err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := database.Ping(pingCtx, db); err != nil {
		database.CloseDB(db)
		return nil, err
	}

	logger.GetLogger().Info("Database connected", zap.String("driver", cfg.Database.Driver))
	return db, nil
}

func migrate(db *gorm.DB) error {
	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Error("Failed to run database migrations", zap.Error(err))
		return err
	}
	logger.GetLogger().Info("Database migrated successfully")
	return nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	if ctx == nil {
		ctx = context.Background()
	}
	created, err := database.Seed(ctx, db, cfg.Seed)
	if err != nil {
		logger.GetLogger().Error("Failed to seed database", zap.Error(err))
		return err
	}
	logger.GetLogger().Info("Database seed finished", zap.Bool("created", created))
	return nil
}
