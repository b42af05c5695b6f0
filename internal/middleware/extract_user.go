package middleware

import (
	"github.com/gin-gonic/gin"

	"cdbl-lms/internal/shared/apperror"
)

func ExtractUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		c.Set("user_id_validated", userID)
		c.Next()
	}
}
