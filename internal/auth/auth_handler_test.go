package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"cdbl-lms/internal/auth"
	autherrors "cdbl-lms/internal/auth/errors"
	authMock "cdbl-lms/internal/auth/mock"
)

func setupAuthRouter(h *auth.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", h.Login)
	r.POST("/refresh", h.RefreshToken)
	r.POST("/logout", h.Logout)
	r.GET("/me", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Next()
	}, h.Me)
	return r
}

func TestHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := authMock.NewMockService(ctrl)
	router := setupAuthRouter(auth.NewHandler(mockService, authConfig()))

	t.Run("web client gets cookies", func(t *testing.T) {
		body, _ := json.Marshal(auth.LoginRequest{Email: "test@cdbl.local", Password: "password123"})

		mockService.EXPECT().
			Login(gomock.Any(), "test@cdbl.local", "password123").
			Return(auth.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, auth.AuthResponse{ID: "user-1"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-Type", "WEB")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		found := false
		for _, c := range cookies {
			if c.Name == "access_token" {
				found = true
				assert.Equal(t, "access-token", c.Value)
				assert.True(t, c.HttpOnly)
			}
		}
		assert.True(t, found)
	})

	t.Run("api client has no cookies", func(t *testing.T) {
		body, _ := json.Marshal(auth.LoginRequest{Email: "test@cdbl.local", Password: "password123"})

		mockService.EXPECT().
			Login(gomock.Any(), "test@cdbl.local", "password123").
			Return(auth.TokenPair{AccessToken: "a", RefreshToken: "r"}, auth.AuthResponse{ID: "user-1"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("invalid credentials", func(t *testing.T) {
		body, _ := json.Marshal(auth.LoginRequest{Email: "test@cdbl.local", Password: "bad"})

		mockService.EXPECT().
			Login(gomock.Any(), "test@cdbl.local", "bad").
			Return(auth.TokenPair{}, auth.AuthResponse{}, autherrors.ErrInvalidCredentials)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := authMock.NewMockService(ctrl)
	router := setupAuthRouter(auth.NewHandler(mockService, authConfig()))

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/refresh", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("cookie based web refresh", func(t *testing.T) {
		mockService.EXPECT().
			RefreshToken(gomock.Any(), "refresh-cookie").
			Return(auth.TokenPair{AccessToken: "new-a", RefreshToken: "new-r"}, auth.AuthResponse{ID: "user-1"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
		req.Header.Set("X-Client-Type", "WEB")
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "refresh-cookie"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "new-a")
	})
}

func TestHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := authMock.NewMockService(ctrl)
	router := setupAuthRouter(auth.NewHandler(mockService, authConfig()))

	mockService.EXPECT().GetMe(gomock.Any(), "user-1").Return(&auth.AuthResponse{ID: "user-1", Role: "CEO"}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"CEO"`)
}

func TestHandler_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := setupAuthRouter(auth.NewHandler(authMock.NewMockService(ctrl), authConfig()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Result().Cookies(), 2)
}
