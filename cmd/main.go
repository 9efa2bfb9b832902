package main

import (
	"fmt"
	"os"

	configs "github.com/Payphone-Digital/admin-panel/config"
	"github.com/Payphone-Digital/admin-panel/internal/constants"
	"github.com/Payphone-Digital/admin-panel/pkg/logger"
	"github.com/Payphone-Digital/admin-panel/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is injected via go build ldflags at build time
var Version = constants.AppVersion

var cfg *configs.Config

var rootCmd = &cobra.Command{
	Use:           "admin-panel",
	Short:         "Admin panel API for users and posts",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := configs.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := logger.InitLogger(loaded); err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		if err := validation.Setup(); err != nil {
			return fmt.Errorf("register validation: %w", err)
		}
		cfg = loaded

		logger.GetLogger().Info("Application starting",
			zap.String("app_name", cfg.App.Name),
			zap.String("environment", cfg.App.Environment),
			zap.String("version", Version),
			zap.String("command", cmd.Name()),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
