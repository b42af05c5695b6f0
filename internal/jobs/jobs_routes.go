package jobs

import (
	"github.com/gin-gonic/gin"

	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, auth gin.HandlerFunc, cronSecret string) {
	jobs := r.Group("/jobs")
	{
		run := middleware.RBACAuthorize(rbacService, domain.ResourceJobs, domain.ActionRun)
		jobs.POST("/accrual", auth, middleware.ExtractUserID(), run, h.RunAccrual)
		jobs.POST("/lapse", auth, middleware.ExtractUserID(), run, h.RunLapse)

		jobs.POST("/cron/:job", middleware.CronSecret(cronSecret), h.RunNamed)
	}
}
