package user

import (
	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	auth gin.HandlerFunc,
) {
	users := r.Group("/users")
	users.Use(auth)
	{
		users.GET("",
			middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionRead),
			handler.GetAll,
		)
		users.GET("/:id",
			middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionRead),
			handler.GetById,
		)
		users.POST("",
			middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionManage),
			handler.Create,
		)
		users.PUT("/:id",
			middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionManage),
			handler.Update,
		)
		users.PATCH("/:id/status",
			middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionManage),
			handler.ToggleStatus,
		)
		users.POST("/:id/force-reset-password",
			middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionManage),
			handler.ForceResetPassword,
		)
	}

	r.POST("/account/password", auth, handler.ChangePassword)
}
