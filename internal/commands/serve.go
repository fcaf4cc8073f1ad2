package commands

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"worktrack/internal/auth"
	"worktrack/internal/config"
	"worktrack/internal/repository"
	"worktrack/internal/web"
	"worktrack/pkg/database"
	"worktrack/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := setup()
		if err != nil {
			return err
		}
		defer logger.SyncLoggers()
		defer db.Close()
		logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

		// Buat tabel jika belum ada
		if err := repository.CreateTableIfNotExists(db); err != nil {
			logger.ErrorLogger.Error("Schema setup failed", zap.Error(err))
			return err
		}

		deps := config.Dependencies{
			Config:   cfg,
			Store:    repository.NewStore(db),
			Sessions: auth.NewSessionManager(auth.WithTTL(cfg.SessionTTL)),
			Now:      time.Now,
		}
		redisClient, err := database.ConnectRedis(cmd.Context(), cfg)
		if err != nil {
			logger.ErrorLogger.Error("Redis connection failed", zap.Error(err))
			return err
		}
		if redisClient != nil {
			defer redisClient.Close()
			deps.LimiterStorage = database.NewRedisStorage(redisClient, "worktrack:limiter:")
			logger.SystemLogger.Info("Login limiter uses redis", zap.String("redis_host", cfg.RedisHost))
		}

		app, err := web.NewApp(deps)
		if err != nil {
			logger.ErrorLogger.Error("Building application failed", zap.Error(err))
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			logger.SystemLogger.Info("Shutting down")
			if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
				logger.ErrorLogger.Error("Shutdown failed", zap.Error(err))
			}
		}()

		logger.SystemLogger.Info("Application ready", zap.String("port", cfg.AppPort))
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
			return err
		}
		return nil
	},
}
