package config

import (
	"sync"

	"github.com/redis/go-redis/v9"
)

// SetRedisClientForTest installs rdb (usually a redismock client) as the
// shared client. Test code only.
func SetRedisClientForTest(rdb *redis.Client) {
	setRedisClient(rdb)
}

// ResetRedisClientForTest drops the shared client without closing it and
// lets ConnectRedis run again. Test code only.
func ResetRedisClientForTest() {
	redisMu.Lock()
	defer redisMu.Unlock()
	redisClient = nil
	redisOnce = sync.Once{}
}
