package notification

import (
	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, auth gin.HandlerFunc) {
	read := middleware.RBACAuthorize(rbacService, domain.ResourceNotification, domain.ActionRead)

	notifications := r.Group("/notifications", auth, middleware.ExtractUserID(), read)
	{
		notifications.GET("", h.GetAll)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.PATCH("/:id/read", h.MarkRead)
		notifications.POST("/read-all", h.MarkAllRead)
	}
}
