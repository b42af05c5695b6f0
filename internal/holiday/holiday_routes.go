package holiday

import (
	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, auth gin.HandlerFunc) {
	holidays := r.Group("/holidays", auth)
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceHoliday, domain.ActionRead), h.GetAll)
		holidays.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceHoliday, domain.ActionManage), h.Create)
		holidays.POST("/import", middleware.RBACAuthorize(rbacService, domain.ResourceHoliday, domain.ActionManage), h.Import)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceHoliday, domain.ActionManage), h.Delete)
	}
}
