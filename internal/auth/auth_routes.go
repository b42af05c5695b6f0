package auth

import (
	"cdbl-lms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, loginLimit gin.HandlerFunc) {
	group := r.Group("/auth")
	{
		group.POST("/login", loginLimit, handler.Login)
		group.POST("/refresh", loginLimit, handler.RefreshToken)
		group.POST("/logout", handler.Logout)
		group.GET("/me", auth, middleware.ExtractUserID(), handler.Me)
	}
}
