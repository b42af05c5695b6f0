package balance_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cdbl-lms/internal/balance"
	balanceerrors "cdbl-lms/internal/balance/errors"
	balanceMock "cdbl-lms/internal/balance/mock"
	"cdbl-lms/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRouter(h *balance.Handler, userID string, role domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", string(role))
		c.Next()
	})
	r.GET("/balances", h.GetMine)
	r.GET("/balances/users/:id/transactions", h.GetUserTransactions)
	r.POST("/balances/adjust", h.Adjust)
	return r
}

func TestBalanceHandler_GetMine(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := balanceMock.NewMockService(ctrl)
	r := setupRouter(balance.NewHandler(svc), userID.String(), domain.RoleEmployee)

	svc.EXPECT().List(gomock.Any(), userID.String(), 2025).Return([]balance.BalanceResponse{
		{UserID: userID.String(), LeaveType: "EARNED", Year: 2025, Remaining: days(15)},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/balances?year=2025", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"remaining":"15"`)
}

func TestBalanceHandler_GetUserTransactions(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := balanceMock.NewMockService(ctrl)
	r := setupRouter(balance.NewHandler(svc), "hr-1", domain.RoleHRAdmin)

	svc.EXPECT().Transactions(gomock.Any(), "u-9", "CASUAL", 0).Return([]balance.TransactionResponse{
		{Type: balance.TxDebit, Amount: days(1)},
		{Type: balance.TxReversal, Amount: days(1)},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/balances/users/u-9/transactions?leave_type=CASUAL&page_size=1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":2`)
	assert.Contains(t, w.Body.String(), `"DEBIT"`)
	assert.NotContains(t, w.Body.String(), `"REVERSAL"`)
}

func TestBalanceHandler_Adjust(t *testing.T) {
	t.Run("bind error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := balanceMock.NewMockService(ctrl)
		r := setupRouter(balance.NewHandler(svc), "hr-1", domain.RoleHRAdmin)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/balances/adjust", strings.NewReader(`{"leave_type":"EARNED"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := balanceMock.NewMockService(ctrl)
		r := setupRouter(balance.NewHandler(svc), "hr-1", domain.RoleHRAdmin)

		svc.EXPECT().Adjust(gomock.Any(), domain.Actor{ID: "hr-1", Role: domain.RoleHRAdmin}, gomock.Any()).
			Return(balance.BalanceResponse{}, balanceerrors.ErrInsufficientBalance)

		body := `{"user_id":"` + userID.String() + `","leave_type":"EARNED","year":2025,"days":-3,"note":"correction"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/balances/adjust", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "INSUFFICIENT_BALANCE")
	})
}
