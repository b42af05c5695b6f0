package department

import (
	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService middleware.RBACService,
	auth gin.HandlerFunc,
) {
	departments := r.Group("/departments")
	departments.Use(auth)
	{
		departments.GET("", h.GetAll)
		departments.GET("/:id", h.GetById)
		departments.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionManage), h.Create)
		departments.PUT("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionManage), h.Update)
		departments.DELETE("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionManage), h.Delete)
	}
}
