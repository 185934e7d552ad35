package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pandu-magang/pandu-backend/internal/config"
	"github.com/pandu-magang/pandu-backend/internal/pkg/logger"
)

// NewRedisClient connects to Redis for the institution cache. Returns nil
// without error when Redis is disabled in the configuration; callers treat a
// nil client as cache-off.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		logger.Info().Msg("Redis disabled, caching is off")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.GetRedisAddr(), err)
	}

	logger.Info().Str("addr", cfg.GetRedisAddr()).Msg("Connected to Redis")
	return client, nil
}
