package audit

import (
	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, auth gin.HandlerFunc) {
	logs := r.Group("/audit-logs", auth)
	{
		logs.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceAudit, domain.ActionRead), h.GetAll)
	}
}
