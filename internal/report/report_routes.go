package report

import (
	"github.com/gin-gonic/gin"

	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, auth gin.HandlerFunc) {
	reports := r.Group("/reports", auth, middleware.ExtractUserID())
	{
		reports.GET("/dashboard", middleware.RBACAuthorize(rbacService, domain.ResourceReport, domain.ActionRead), h.Dashboard)
		reports.GET("/leaves/export", middleware.RBACAuthorize(rbacService, domain.ResourceReport, domain.ActionRead), h.ExportLeaves)
		reports.GET("/leaves/:id/letter", middleware.RBACAuthorize(rbacService, domain.ResourceReport, domain.ActionDownload), h.LeaveLetter)
	}
}
