package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cdbl-lms/internal/shared/apperror"
	"cdbl-lms/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{service: service, logger: l}
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	var q ListNotificationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	items, err := h.service.List(c.Request.Context(), c.GetString("user_id"), q)
	if err != nil {
		writeError(c, err)
		return
	}

	page, pageSize := response.PageParams(c)
	paged, meta := response.Paginate(items, page, pageSize)
	response.Success(c, http.StatusOK, paged, &meta)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	n, err := h.service.UnreadCount(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, UnreadCountResponse{Unread: n}, nil)
}

func (h *Handler) MarkRead(c *gin.Context) {
	if err := h.service.MarkRead(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "marked as read"}, nil)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	n, err := h.service.MarkAllRead(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": n}, nil)
}
