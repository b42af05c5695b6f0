package audit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cdbl-lms/internal/shared/apperror"
	"cdbl-lms/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetAll(c *gin.Context) {
	var q ListAuditQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	logs, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(logs, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}
