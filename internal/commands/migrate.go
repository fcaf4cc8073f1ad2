package commands

import (
	"fmt"

	"worktrack/internal/repository"
	"worktrack/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resetTables bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := setup()
		if err != nil {
			return err
		}
		defer logger.SyncLoggers()
		defer db.Close()

		if resetTables {
			if err := repository.DeleteAllTable(db); err != nil {
				return err
			}
			logger.SystemLogger.Warn("All tables dropped")
		}
		if err := repository.CreateTableIfNotExists(db); err != nil {
			logger.ErrorLogger.Error("Schema setup failed", zap.Error(err))
			return err
		}
		fmt.Println("Schema is up to date")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&resetTables, "reset", false, "drop every table before creating them (destroys data)")
}
