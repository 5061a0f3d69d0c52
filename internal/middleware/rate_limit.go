package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"thrifttu_back_end/internal/database"
)

const (
	// Chat burns an LLM call per request, so its budget is tight. Plain
	// API endpoints only hit the sheet cache.
	ChatMaxRequests = 20
	APIMaxRequests  = 100
	rateWindow      = 1 * time.Minute
)

// ChatRateLimit caps chat requests per client IP. Without Redis the
// limiter degrades to a no-op; it must never take the storefront down.
func ChatRateLimit() gin.HandlerFunc {
	return rateLimit("chat_rate", ChatMaxRequests)
}

// APIRateLimit is the general per-IP budget for public endpoints.
func APIRateLimit() gin.HandlerFunc {
	return rateLimit("api_rate", APIMaxRequests)
}

func rateLimit(prefix string, max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if database.Redis == nil {
			c.Next()
			return
		}

		ctx := context.Background()
		key := fmt.Sprintf("%s:%s", prefix, c.ClientIP())

		pipe := database.Redis.Pipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, rateWindow)
		if _, err := pipe.Exec(ctx); err != nil {
			// Redis trouble should not block shoppers.
			c.Next()
			return
		}

		if count := incr.Val(); count > max {
			ttl := database.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Terlalu banyak permintaan. Coba lagi sebentar ya.",
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
