package infra

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"pulse/pkg/config"
)

// InitRedis connects the report cache. The cache is best-effort: when no
// Redis is reachable this returns nil and reports fall through to direct
// database reads.
func InitRedis() *redis.Client {
	addr := config.GetEnv("REDIS_URI", "")
	if addr == "" {
		log.Println("REDIS_URI not set, report caching disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("Failed to connect to Redis, report caching disabled: %v", err)
		return nil
	}

	log.Println("Redis connected")
	return rdb
}
