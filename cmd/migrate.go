package cmd

import (
	"github.com/spf13/cobra"

	database "schoolku_backend/internals/databases"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update all tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer database.Close(db)
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
		log.Info("✅ migration done")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
