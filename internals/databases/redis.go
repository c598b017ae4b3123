package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"suryaghar_backend/internals/configs"
)

var Redis *redis.Client

// ConnectRedis opens the client used as rate-limiter storage. Without
// REDIS_ADDR the limiters keep their counters in process memory.
func ConnectRedis() *redis.Client {
	addr := configs.GetEnv("REDIS_ADDR")
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR not set, rate limits are per process")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: configs.GetEnv("REDIS_PASSWORD"),
		DB:       configs.GetEnvInt("REDIS_DB", 0),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[ERROR] redis ping %s: %v, falling back to in-process limits", addr, err)
		_ = client.Close()
		return nil
	}
	log.Println("✅ Redis connected.")
	Redis = client
	return client
}

func CloseRedis() {
	if Redis != nil {
		_ = Redis.Close()
	}
}
