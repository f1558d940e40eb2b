package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	database "schoolku_backend/internals/databases"
)

var rootCmd = &cobra.Command{
	Use:           "schoolku",
	Short:         "School fee ledger backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// bootstrap loads config, logger and DB for every subcommand.
func bootstrap() (*configs.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := configs.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := configs.NewLogger(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build logger: %w", err)
	}
	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}
