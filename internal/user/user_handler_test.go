package user_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"cdbl-lms/internal/shared/apperror"
	"cdbl-lms/internal/user"
	usererrors "cdbl-lms/internal/user/errors"
)

type fakeUserService struct {
	user.Service
	createFn  func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error)
	getByIDFn func(ctx context.Context, id string) (user.UserResponse, error)
}

func (f *fakeUserService) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	return f.getByIDFn(ctx, id)
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func init() {
	gin.SetMode(gin.TestMode)
	apperror.Init()
}

func TestUserHandler_Create(t *testing.T) {
	t.Run("validation error names the json field", func(t *testing.T) {
		h := user.NewHandler(&fakeUserService{})
		r := gin.New()
		r.POST("/users", h.Create)

		body := `{"email":"a@b.com","password":"longenough","role":"EMPLOYEE","join_date":"2020-01-01"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
		assert.Equal(t, "Full Name is required", env.Error.Message)
	})

	t.Run("created", func(t *testing.T) {
		svc := &fakeUserService{
			createFn: func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
				return user.UserResponse{ID: "u-1", Email: req.Email, Role: req.Role}, nil
			},
		}
		h := user.NewHandler(svc)
		r := gin.New()
		r.POST("/users", h.Create)

		body := `{"full_name":"A","email":"a@b.com","password":"longenough","role":"HR_ADMIN","join_date":"2020-01-01"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Ok)
	})
}

func TestUserHandler_GetById_NotFound(t *testing.T) {
	svc := &fakeUserService{
		getByIDFn: func(ctx context.Context, id string) (user.UserResponse, error) {
			return user.UserResponse{}, usererrors.ErrUserNotFound
		},
	}
	h := user.NewHandler(svc)
	r := gin.New()
	r.GET("/users/:id", h.GetById)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/x", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
