package policy

import (
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
	l := zap.L().Named("policy.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.handler")
	}
	return &Handler{service: service, logger: l}
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	policies, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]PolicyResponse, len(policies))
	for i, p := range policies {
		resp[i] = ToResponse(p)
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByType(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("type"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ToResponse(p), nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update policy bind failed", zap.Error(err))
		writeError(c, apperror.MapValidationError(err))
		return
	}

	actor := domain.Actor{ID: c.GetString("user_id"), Role: domain.Role(c.GetString("role"))}
	p, err := h.service.Update(c.Request.Context(), actor, c.Param("type"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ToResponse(p), nil)
}
