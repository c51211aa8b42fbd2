package cache

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/config"
)

// NewRedis connects to redis, or returns nil when redis is unreachable.
// Callers treat a nil client as "cache disabled".
func NewRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable, running without cache: %v", err)
		return nil
	}

	return client
}
