package rbac

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"cdbl-lms/internal/domain"
)

type mockService struct{}

func (m *mockService) LoadPolicy() error { return nil }

func (m *mockService) Enforce(req domain.EnforceRequest) (bool, error) {
	if req.Resource == "leave" && req.Action == "read" {
		return true, nil
	}
	return false, nil
}

func (m *mockService) Capabilities(role string) []string {
	return []string{"leave:read"}
}

type envelope struct {
	Ok   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(&mockService{})

	router := gin.New()
	router.POST("/rbac/enforce", handler.Enforce)

	t.Run("allowed", func(t *testing.T) {
		jsonBody, _ := json.Marshal(domain.EnforceRequest{Role: "EMPLOYEE", Resource: "leave", Action: "read"})
		req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var resp domain.EnforceResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.True(t, resp.Allowed)
	})

	t.Run("missing fields", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{"role":"EMPLOYEE"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Capabilities(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(&mockService{})
	router := gin.New()
	router.GET("/capabilities", func(c *gin.Context) {
		c.Set("role", "EMPLOYEE")
		c.Next()
	}, handler.Capabilities)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/capabilities", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var resp domain.RoleCapabilitiesResponse
	assert.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "EMPLOYEE", resp.Role)
	assert.Equal(t, []string{"leave:read"}, resp.Capabilities)
}
