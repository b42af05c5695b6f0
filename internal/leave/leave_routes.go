package leave

import (
	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /leaves and /approvals. createGuards run before
// POST /leaves, e.g. the idempotency middleware.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, auth gin.HandlerFunc, createGuards ...gin.HandlerFunc) {
	canCreate := middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionCreate)
	canRead := middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead)
	canDecide := middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionDecide)
	canCancel := middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionCancel)
	canRecall := middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRecall)

	create := append([]gin.HandlerFunc{canCreate}, createGuards...)
	create = append(create, h.Create)

	leaves := r.Group("/leaves", auth, middleware.ExtractUserID())
	{
		leaves.GET("", canRead, h.GetAll)
		leaves.POST("", create...)
		leaves.GET("/:id", canRead, h.GetByID)
		leaves.PUT("/:id", canCreate, h.Update)
		leaves.GET("/:id/versions", canRead, h.GetVersions)
		leaves.GET("/:id/steps", canRead, h.GetSteps)

		leaves.POST("/:id/submit", canCreate, h.Submit())
		leaves.POST("/:id/certificate", canCreate, h.AttachCertificate())
		leaves.POST("/:id/withdraw", canCreate, h.Withdraw())
		leaves.POST("/:id/cancel", canCreate, h.RequestCancellation())

		leaves.POST("/:id/forward", canDecide, h.Forward())
		leaves.POST("/:id/return", canDecide, h.Return())
		leaves.POST("/:id/approve", canDecide, h.Approve())
		leaves.POST("/:id/reject", canDecide, h.Reject())

		leaves.POST("/:id/cancellation/approve", canCancel, h.ApproveCancellation())
		leaves.POST("/:id/cancellation/reject", canCancel, h.RejectCancellation())
		leaves.POST("/:id/recall", canRecall, h.Recall())
	}

	approvals := r.Group("/approvals", auth, middleware.ExtractUserID())
	{
		approvals.GET("/pending", canDecide, h.GetPending)
	}
}
