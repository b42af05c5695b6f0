package policy

import (
	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, auth gin.HandlerFunc) {
	policies := r.Group("/policies", auth)
	{
		policies.GET("", middleware.RBACAuthorize(rbacService, domain.ResourcePolicy, domain.ActionRead), h.GetAll)
		policies.GET("/:type", middleware.RBACAuthorize(rbacService, domain.ResourcePolicy, domain.ActionRead), h.GetByType)
		policies.PATCH("/:type", middleware.RBACAuthorize(rbacService, domain.ResourcePolicy, domain.ActionUpdate), h.Update)
	}
}
