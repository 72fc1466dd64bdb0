package cmd

import (
	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

// migrateCmd creates or upgrades every table the stores registered.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "create or update the lendpool database tables",
	Run: func(cmd *cobra.Command, args []string) {
		database := provideDatabase()
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			cmd.PrintErrln("migrate tables failed:", err)
			return
		}

		cmd.Println("tables migrated")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
