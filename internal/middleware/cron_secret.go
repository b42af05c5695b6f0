package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/shared/apperror"
)

const CronSecretHeader = "X-Cron-Secret"

// CronSecret lets an external scheduler call job endpoints without a user
// token. The request then runs as the system actor. An empty secret closes
// the route.
func CronSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(CronSecretHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		c.Set("user_id", domain.SystemActor.ID)
		c.Set("role", string(domain.SystemActor.Role))
		c.Next()
	}
}
