package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	redisMu     sync.RWMutex
	redisClient *redis.Client
	redisOnce   sync.Once
)

const redisPingTimeout = 2 * time.Second

func redisOptions() *redis.Options {
	addr := getEnv("REDIS_ADDR", "localhost:6379")
	db, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil {
		db = 0
	}
	return &redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       db,
	}
}

// ConnectRedis opens the shared Redis client used by the rate limiter. It
// runs once per process; later calls return the same client and error.
// Under APPENV=test no client is created and (nil, nil) is returned.
func ConnectRedis() (*redis.Client, error) {
	var err error
	redisOnce.Do(func() {
		if IsTest() {
			return
		}

		rdb := redis.NewClient(redisOptions())
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if pingErr := rdb.Ping(ctx).Err(); pingErr != nil {
			_ = rdb.Close()
			err = fmt.Errorf("redis ping failed: %w", pingErr)
			return
		}
		setRedisClient(rdb)
	})
	return GetRedisClient(), err
}

func setRedisClient(rdb *redis.Client) {
	redisMu.Lock()
	redisClient = rdb
	redisMu.Unlock()
}

// GetRedisClient returns the shared client, or nil when Redis is not connected.
func GetRedisClient() *redis.Client {
	redisMu.RLock()
	defer redisMu.RUnlock()
	return redisClient
}

// CloseRedis closes and forgets the shared client.
func CloseRedis() error {
	redisMu.Lock()
	rdb := redisClient
	redisClient = nil
	redisMu.Unlock()

	if rdb == nil {
		return nil
	}
	return rdb.Close()
}
