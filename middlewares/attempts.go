package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// AttemptRule caps how often a key may hit an endpoint within a window,
// counted in Redis. Used to slow down credential guessing on /login.
type AttemptRule struct {
	Limit  int
	Window time.Duration
	KeyFn  func(c *gin.Context) string
}

// AttemptLimit counts requests per key with INCR and an expiring window.
// When Redis is unreachable the request is let through; the limiter is a
// brake, not a dependency.
func AttemptLimit(rdb *redis.Client, rule AttemptRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rule.KeyFn(c)
		if key == "" {
			c.Next()
			return
		}
		ctx := context.Background()

		n, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if n == 1 {
			_ = rdb.Expire(ctx, key, rule.Window).Err()
		}
		if int(n) > rule.Limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many attempts. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
