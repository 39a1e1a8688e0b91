package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"bluemoon-http-service/internal/infrastructure/config"
)

// NewRedisClient connects to Redis and pings it. It returns nil, nil when Redis is disabled.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	if !cfg.RedisEnabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.GetRedisAddr(), err)
	}
	return client, nil
}
