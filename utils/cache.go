// File: talentshout/utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"talentshout/config"

	"github.com/go-redis/redis/v8"
)

// AuthCachePrefix namespaces auth token hashes in the auth cache DB.
const AuthCachePrefix = "auth:"

var (
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
	// IdempotencyCacheClient stores payment idempotency keys and their results.
	IdempotencyCacheClient *redis.Client
)

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AuthCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// InitIdempotencyCache initializes the Redis client for payment idempotency.
func InitIdempotencyCache() {
	IdempotencyCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisIdempotencyDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := IdempotencyCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Idempotency Cache): %v", err)
	}
}

// GetIdempotencyCacheClient returns the Redis client for payment idempotency.
func GetIdempotencyCacheClient() *redis.Client {
	if IdempotencyCacheClient == nil {
		InitIdempotencyCache()
	}
	return IdempotencyCacheClient
}

// InitRedis initializes all Redis clients eagerly at startup.
func InitRedis() {
	InitAuthCache()
	InitIdempotencyCache()
}
