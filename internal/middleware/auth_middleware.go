package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	autherrors "cdbl-lms/internal/auth/errors"
	"cdbl-lms/internal/auth/token"
	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/shared/apperror"
	"cdbl-lms/internal/shared/contextutil"
	"cdbl-lms/internal/shared/response"
)

func abortWith(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}

// AuthMiddleware accepts a bearer token or the access_token cookie and
// puts user_id and role on both the gin and the request context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, autherrors.ErrTokenNotFound)
			return
		}

		claims, err := token.Parse(secret, tokenString, token.TypeAccess)
		if err != nil {
			abortWith(c, err)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		ctx := contextutil.WithUserID(c.Request.Context(), claims.UserID)
		ctx = contextutil.WithRole(ctx, claims.Role)
		if l, ok := contextutil.LoggerFrom(ctx); ok {
			ctx = contextutil.WithLogger(ctx, l.With(
				zap.String("user_id", claims.UserID),
				zap.String("role", claims.Role),
			))
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := domain.Role(c.GetString("role"))
		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		abortWith(c, autherrors.ErrForbidden)
	}
}
