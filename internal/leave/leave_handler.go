package leave

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/shared/apperror"
	"cdbl-lms/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func actorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{ID: c.GetString("user_id"), Role: domain.Role(c.GetString("role"))}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create leave bind failed", zap.Error(err))
		writeError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	var q ListLeaveQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	leaves, err := h.service.List(c.Request.Context(), actorFrom(c), q)
	if err != nil {
		writeError(c, err)
		return
	}

	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(leaves, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetPending(c *gin.Context) {
	leaves, err := h.service.ListPendingFor(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(leaves, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetVersions(c *gin.Context) {
	resp, err := h.service.Versions(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetSteps(c *gin.Context) {
	resp, err := h.service.Steps(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update leave bind failed", zap.Error(err))
		writeError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateDraft(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

type simpleAction func(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error)

type commentAction func(ctx context.Context, actor domain.Actor, id, comment string) (LeaveResponse, error)

func (h *Handler) simple(fn simpleAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := fn(c.Request.Context(), actorFrom(c), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		response.Success(c, http.StatusOK, resp, nil)
	}
}

// withComment binds an optional {"comment": "..."} body.
func (h *Handler) withComment(fn commentAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DecisionRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				h.logger.Warn("http leave decision bind failed", zap.Error(err))
				writeError(c, apperror.MapValidationError(err))
				return
			}
		}

		resp, err := fn(c.Request.Context(), actorFrom(c), c.Param("id"), req.Comment)
		if err != nil {
			writeError(c, err)
			return
		}
		response.Success(c, http.StatusOK, resp, nil)
	}
}

func (h *Handler) Submit() gin.HandlerFunc { return h.simple(h.service.Submit) }
func (h *Handler) AttachCertificate() gin.HandlerFunc { return h.simple(h.service.AttachCertificate) }
func (h *Handler) Withdraw() gin.HandlerFunc { return h.simple(h.service.Withdraw) }
func (h *Handler) Forward() gin.HandlerFunc { return h.withComment(h.service.Forward) }
func (h *Handler) Return() gin.HandlerFunc { return h.withComment(h.service.Return) }
func (h *Handler) Approve() gin.HandlerFunc { return h.withComment(h.service.Approve) }
func (h *Handler) Reject() gin.HandlerFunc { return h.withComment(h.service.Reject) }
func (h *Handler) RequestCancellation() gin.HandlerFunc {
	return h.withComment(h.service.RequestCancellation)
}
func (h *Handler) ApproveCancellation() gin.HandlerFunc {
	return h.withComment(h.service.ApproveCancellation)
}
func (h *Handler) RejectCancellation() gin.HandlerFunc {
	return h.withComment(h.service.RejectCancellation)
}
func (h *Handler) Recall() gin.HandlerFunc { return h.withComment(h.service.Recall) }
