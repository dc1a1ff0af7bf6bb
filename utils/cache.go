package utils

import (
	"context"
	"log"
	"time"

	"clearmind/config"

	"github.com/go-redis/redis/v8"
)

// ContextCacheClient holds conversation context between turns.
var ContextCacheClient *redis.Client

// InitRedis initializes the Redis conversation context client.
func InitRedis() {
	ContextCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisContextDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ContextCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Context Cache): %v", err)
	}
}

// GetContextCacheClient returns the conversation context client.
func GetContextCacheClient() *redis.Client {
	if ContextCacheClient == nil {
		InitRedis()
	}
	return ContextCacheClient
}
