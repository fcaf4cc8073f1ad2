package commands

import (
	"database/sql"
	"fmt"

	"worktrack/configs"
	"worktrack/pkg/database"
	"worktrack/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "worktrack",
	Short: "Internal work tracker",
	Long: `worktrack serves the work-tracking web app: admins manage users and tasks,
employees log daily hours and progress, viewers read weekly and daily reports.`,
	SilenceUsage: true,
}

// setup memuat config, menyiapkan logger dan membuka database.
// Pemanggil wajib menutup db dan memanggil logger.SyncLoggers.
func setup() (configs.Config, *sql.DB, error) {
	cfg := configs.LoadConfig()
	if err := logger.InitLoggers(cfg.LogDir); err != nil {
		return cfg, nil, fmt.Errorf("init loggers: %w", err)
	}

	db, err := database.ConnectDB(cfg)
	if err != nil {
		logger.ErrorLogger.Error("Database connection failed", zap.Error(err))
		return cfg, nil, err
	}
	logger.SystemLogger.Info("Database Connected")
	return cfg, db, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createAdminCmd)
}
