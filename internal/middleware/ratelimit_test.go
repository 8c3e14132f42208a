package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func postThrough(t *testing.T, limited gin.HandlerFunc) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/auth", limited, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth", nil))
	return w.Code
}

func TestRateLimiterDisabledWithoutRedis(t *testing.T) {
	limiter := NewRateLimiter(nil, 5, time.Minute)

	assert.Equal(t, http.StatusOK, postThrough(t, limiter.LimitLogin()))
	assert.Equal(t, http.StatusOK, postThrough(t, limiter.LimitPasswordReset()))
}

func TestRateLimiterFailsOpenWhenRedisUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	limiter := NewRateLimiter(client, 1, time.Minute)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, postThrough(t, limiter.LimitPasswordReset()))
	}
}
