package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"cdbl-lms/internal/shared/apperror"
	"cdbl-lms/internal/shared/ratelimit"
)

func rateLimit(store ratelimit.Store, limit int, window time.Duration, keyFn func(c *gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)
		if key == "" || limit <= 0 {
			c.Next()
			return
		}

		ok, err := store.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			// Counting is best effort; a broken store never blocks traffic.
			c.Next()
			return
		}
		if !ok {
			abortWith(c, apperror.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

func RateLimitByIP(store ratelimit.Store, limit int, window time.Duration) gin.HandlerFunc {
	return rateLimit(store, limit, window, func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	})
}

// RateLimitByUser skips anonymous requests; put it after AuthMiddleware.
func RateLimitByUser(store ratelimit.Store, limit int, window time.Duration) gin.HandlerFunc {
	return rateLimit(store, limit, window, func(c *gin.Context) string {
		userID := c.GetString("user_id")
		if userID == "" {
			return ""
		}
		return "user:" + userID
	})
}
