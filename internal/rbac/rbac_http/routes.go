package rbac_http

import (
	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/middleware"
	"cdbl-lms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *rbac.Handler, service rbac.Service, auth gin.HandlerFunc) {
	r.GET("/capabilities", auth, handler.Capabilities)

	group := r.Group("/rbac")
	group.Use(auth)
	{
		group.POST("/enforce", middleware.RBACAuthorize(service, domain.ResourceUser, domain.ActionManage), handler.Enforce)
	}
}
