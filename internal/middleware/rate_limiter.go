package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiterConfig defines rate limiting rules for the auth endpoints.
type RateLimiterConfig struct {
	MaxRequests int           // Maximum requests allowed in the window
	Window      time.Duration // Counting window
	BlockTime   time.Duration // How long to block after exceeding the limit
}

// RateLimiter provides IP-based rate limiting backed by Redis, shared
// across server nodes.
type RateLimiter struct {
	redis  *redis.Client
	ctx    context.Context
	config RateLimiterConfig
}

func NewRateLimiter(redisClient *redis.Client, config RateLimiterConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		ctx:    context.Background(),
		config: config,
	}
}

// Middleware returns the gin middleware enforcing the limit. Redis errors
// fail open: signin availability wins over strict limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		allowed, retryAfter, err := rl.CheckLimit(clientIP)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":    false,
				"statusCode": http.StatusTooManyRequests,
				"message":    "Too many requests. Please try again later.",
			})
			return
		}

		c.Next()
	}
}

// CheckLimit implements a sliding window counter via INCR with EXPIRE.
func (rl *RateLimiter) CheckLimit(ip string) (bool, time.Duration, error) {
	key := fmt.Sprintf("ratelimit:%s", ip)

	count, err := rl.redis.Incr(rl.ctx, key).Result()
	if err != nil {
		return false, 0, err
	}

	// First request in the window starts the clock
	if count == 1 {
		if err := rl.redis.Expire(rl.ctx, key, rl.config.Window).Err(); err != nil {
			return false, 0, err
		}
	}

	if count > int64(rl.config.MaxRequests) {
		if count == int64(rl.config.MaxRequests)+1 {
			// Extend the key so the offender stays blocked past the window
			rl.redis.Expire(rl.ctx, key, rl.config.BlockTime)
		}
		ttl, err := rl.redis.TTL(rl.ctx, key).Result()
		if err != nil {
			ttl = rl.config.Window
		}
		return false, ttl, nil
	}

	return true, 0, nil
}
