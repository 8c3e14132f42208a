package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/attendlink/attendlink/internal/app/models/dto"
	"github.com/attendlink/attendlink/internal/pkg/logger"
)

// RateLimiter throttles auth attempts per client IP using a fixed
// window counter in Redis.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter creates a new RateLimiter. A nil client disables limiting.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

// LimitLogin counts login attempts per IP.
func (r *RateLimiter) LimitLogin() gin.HandlerFunc {
	return r.limitByIP("login", "Too many login attempts")
}

// LimitPasswordReset counts forgot-password requests per IP, so a single
// client cannot flood the reset-token table.
func (r *RateLimiter) LimitPasswordReset() gin.HandlerFunc {
	return r.limitByIP("reset", "Too many password reset requests")
}

// limitByIP counts attempts per IP in a fixed window. When Redis is
// unreachable the request passes: an unavailable limiter must not take
// auth down.
func (r *RateLimiter) limitByIP(scope, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.client == nil || r.limit <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%s", scope, c.ClientIP())

		count, err := r.client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn().Err(err).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if count == 1 {
			if err := r.client.Expire(ctx, key, r.window).Err(); err != nil {
				logger.Warn().Err(err).Msg("Failed to set rate limit window")
			}
		}

		if count > int64(r.limit) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeRateLimited, message).
				WithDetails("Try again later")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}
