package balance

import (
	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, auth gin.HandlerFunc) {
	balances := r.Group("/balances", auth, middleware.ExtractUserID())
	{
		balances.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceBalance, domain.ActionRead), h.GetMine)
		balances.GET("/transactions", middleware.RBACAuthorize(rbacService, domain.ResourceBalance, domain.ActionRead), h.GetMyTransactions)
		balances.GET("/users/:id", middleware.RBACAuthorize(rbacService, domain.ResourceBalance, domain.ActionReadAll), h.GetByUser)
		balances.GET("/users/:id/transactions", middleware.RBACAuthorize(rbacService, domain.ResourceBalance, domain.ActionReadAll), h.GetUserTransactions)
		balances.POST("/adjust", middleware.RBACAuthorize(rbacService, domain.ResourceBalance, domain.ActionAdjust), h.Adjust)
	}
}
