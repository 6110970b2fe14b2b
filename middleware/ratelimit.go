package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ariebrainware/cosec-marketplace/config"
	"github.com/ariebrainware/cosec-marketplace/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// Rate limiting defaults
	defaultRateLimit  = 10               // 10 requests
	defaultRateWindow = 15 * time.Minute // per 15 minutes
)

var errRateLimited = errors.New("rate limit exceeded")

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	Audit  *util.AuditLogger
	Logger *zap.Logger
}

func rateLimitKey(clientIP, endpoint string) string {
	return fmt.Sprintf("ratelimit:%s:%s", endpoint, clientIP)
}

// RateLimiter counts requests per client IP and path in Redis. Without a
// Redis client, or when Redis fails, requests are let through.
func RateLimiter(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limit == 0 {
		cfg.Limit = defaultRateLimit
	}
	if cfg.Window == 0 {
		cfg.Window = defaultRateWindow
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	log := cfg.Logger.Named("ratelimit")

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		endpoint := c.Request.URL.Path

		allowed, err := checkRateLimit(c.Request.Context(), rateLimitKey(clientIP, endpoint), cfg.Limit, cfg.Window)
		if err != nil {
			log.Warn("rate limit check failed, allowing request",
				zap.String("client_ip", clientIP),
				zap.String("endpoint", endpoint),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if !allowed {
			cfg.Audit.LogRateLimitExceeded(clientIP, endpoint)
			util.CallTooManyRequests(c, util.APIErrorParams{
				Msg: "Too many requests. Please try again later.",
				Err: errRateLimited,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// checkRateLimit returns true if the request is within the limit. The window
// starts at the first request of a key.
func checkRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return true, nil
	}

	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if count == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count <= int64(limit), nil
}
