package jobs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	jobserrors "cdbl-lms/internal/jobs/errors"
	"cdbl-lms/internal/shared/apperror"
	"cdbl-lms/internal/shared/dateutil"
	"cdbl-lms/internal/shared/response"
)

type Handler struct {
	runner Runner
	now    func() time.Time
	logger *zap.Logger
}

func NewHandler(runner Runner, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("jobs.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("jobs.handler")
	}
	return &Handler{runner: runner, now: time.Now, logger: l}
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) RunAccrual(c *gin.Context) {
	h.run(c, JobMonthlyAccrual)
}

func (h *Handler) RunLapse(c *gin.Context) {
	h.run(c, JobAnnualLapse)
}

// RunNamed serves the cron trigger, where the job comes from the path.
func (h *Handler) RunNamed(c *gin.Context) {
	h.run(c, c.Param("job"))
}

func (h *Handler) run(c *gin.Context, job string) {
	var req RunJobRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}
	if req.AsOf == "" && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("http run job bind failed", zap.String("job", job), zap.Error(err))
			writeError(c, apperror.MapValidationError(err))
			return
		}
	}

	asOf := DefaultAsOf(job, h.now())
	if req.AsOf != "" {
		parsed, err := dateutil.Parse(req.AsOf)
		if err != nil {
			writeError(c, jobserrors.ErrInvalidAsOf)
			return
		}
		asOf = parsed
	}

	res, err := Run(c.Request.Context(), h.runner, job, asOf)
	if err != nil {
		h.logger.Error("http run job failed", zap.String("job", job), zap.Error(err))
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}
