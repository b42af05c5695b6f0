package department_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cdbl-lms/internal/department"
	departmenterrors "cdbl-lms/internal/department/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeDepartmentService struct {
	CreateFn  func(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetAllFn  func(ctx context.Context) ([]department.DepartmentResponse, error)
	GetByIDFn func(ctx context.Context, id string) (department.DepartmentResponse, error)
	UpdateFn  func(ctx context.Context, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakeDepartmentService) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeDepartmentService) GetAll(ctx context.Context) ([]department.DepartmentResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeDepartmentService) GetByID(ctx context.Context, id string) (department.DepartmentResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeDepartmentService) Update(ctx context.Context, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeDepartmentService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func setupRouter(h *department.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/departments", h.Create)
	r.GET("/departments", h.GetAll)
	r.GET("/departments/:id", h.GetById)
	r.PUT("/departments/:id", h.Update)
	r.DELETE("/departments/:id", h.Delete)
	return r
}

func TestDepartmentHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{ID: uuid.New().String(), Name: req.Name}, nil
			},
		}
		r := setupRouter(department.NewHandler(svc))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{"name":"HR"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		r := setupRouter(department.NewHandler(&fakeDepartmentService{}))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{}, errors.New("failed")
			},
		}
		r := setupRouter(department.NewHandler(svc))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{"name":"HR"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestDepartmentHandler_GetAll(t *testing.T) {
	svc := &fakeDepartmentService{
		GetAllFn: func(ctx context.Context) ([]department.DepartmentResponse, error) {
			return []department.DepartmentResponse{{ID: "d-1", Name: "HR"}}, nil
		},
	}
	r := setupRouter(department.NewHandler(svc))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/departments", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"HR"`)
}

func TestDepartmentHandler_GetById(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := &fakeDepartmentService{
			GetByIDFn: func(ctx context.Context, id string) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
			},
		}
		r := setupRouter(department.NewHandler(svc))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/departments/d-9", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDepartmentHandler_Update(t *testing.T) {
	svc := &fakeDepartmentService{
		UpdateFn: func(ctx context.Context, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
			assert.Equal(t, "d-1", id)
			return department.DepartmentResponse{ID: id, Name: req.Name}, nil
		},
	}
	r := setupRouter(department.NewHandler(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/departments/d-1", strings.NewReader(`{"name":"Finance"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDepartmentHandler_Delete(t *testing.T) {
	svc := &fakeDepartmentService{
		DeleteFn: func(ctx context.Context, id string) error {
			return nil
		},
	}
	r := setupRouter(department.NewHandler(svc))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/departments/d-1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
