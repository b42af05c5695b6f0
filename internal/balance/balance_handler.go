package balance

import (
	"net/http"
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
	l := zap.L().Named("balance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.handler")
	}
	return &Handler{service: service, logger: l}
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func queryYear(c *gin.Context) int {
	year, _ := strconv.Atoi(c.Query("year"))
	return year
}

func (h *Handler) GetMine(c *gin.Context) {
	h.list(c, c.GetString("user_id"))
}

func (h *Handler) GetByUser(c *gin.Context) {
	h.list(c, c.Param("id"))
}

func (h *Handler) list(c *gin.Context, userID string) {
	balances, err := h.service.List(c.Request.Context(), userID, queryYear(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, balances, nil)
}

func (h *Handler) GetMyTransactions(c *gin.Context) {
	h.transactions(c, c.GetString("user_id"))
}

func (h *Handler) GetUserTransactions(c *gin.Context) {
	h.transactions(c, c.Param("id"))
}

func (h *Handler) transactions(c *gin.Context, userID string) {
	txs, err := h.service.Transactions(c.Request.Context(), userID, c.Query("leave_type"), queryYear(c))
	if err != nil {
		writeError(c, err)
		return
	}

	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(txs, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) Adjust(c *gin.Context) {
	var req AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http adjust balance bind failed", zap.Error(err))
		writeError(c, apperror.MapValidationError(err))
		return
	}

	actor := domain.Actor{ID: c.GetString("user_id"), Role: domain.Role(c.GetString("role"))}
	resp, err := h.service.Adjust(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
