package database

import (
	"context"
	"fmt"

	"worktrack/configs"
	"worktrack/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ConnectRedis returns nil without error when REDIS_HOST is not configured.
func ConnectRedis(ctx context.Context, cfg configs.Config) (*redis.Client, error) {
	if cfg.RedisHost == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.ErrorLogger.Error("Redis connection error", zap.Error(err))
		client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}
