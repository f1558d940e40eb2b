package cmd

import (
	"github.com/spf13/cobra"

	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/seeds"
)

var seedDir string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users, fee structures and students from JSON seed files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer database.Close(db)
		return seeds.RunAllSeeds(cmd.Context(), db, seedDir, log)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedDir, "dir", "internals/seeds", "directory holding the data_*.json files")
	rootCmd.AddCommand(seedCmd)
}
