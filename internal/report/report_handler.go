package report

import (
	"net/http"
	"net/url"
	"strconv"

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
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
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

func sendFile(c *gin.Context, f File) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(f.Name))
	c.Data(http.StatusOK, f.ContentType, f.Data)
}

func (h *Handler) Dashboard(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	resp, err := h.service.Dashboard(c.Request.Context(), actorFrom(c), year)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ExportLeaves(c *gin.Context) {
	var q ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.Warn("http export leaves bind failed", zap.Error(err))
		writeError(c, apperror.MapValidationError(err))
		return
	}

	f, err := h.service.ExportLeaves(c.Request.Context(), actorFrom(c), q)
	if err != nil {
		writeError(c, err)
		return
	}
	sendFile(c, f)
}

func (h *Handler) LeaveLetter(c *gin.Context) {
	f, err := h.service.LeaveLetter(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	sendFile(c, f)
}
