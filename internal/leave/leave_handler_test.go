package leave_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/leave"
	leaveerrors "cdbl-lms/internal/leave/errors"
)

type apiError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	leave.Service
	createFn  func(ctx context.Context, actor domain.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	listFn    func(ctx context.Context, actor domain.Actor, q leave.ListLeaveQuery) ([]leave.LeaveResponse, error)
	pendingFn func(ctx context.Context, actor domain.Actor) ([]leave.LeaveResponse, error)
	forwardFn func(ctx context.Context, actor domain.Actor, id, comment string) (leave.LeaveResponse, error)
	rejectFn  func(ctx context.Context, actor domain.Actor, id, comment string) (leave.LeaveResponse, error)
	submitFn  func(ctx context.Context, actor domain.Actor, id string) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Create(ctx context.Context, actor domain.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.createFn(ctx, actor, req)
}
func (f *fakeLeaveService) List(ctx context.Context, actor domain.Actor, q leave.ListLeaveQuery) ([]leave.LeaveResponse, error) {
	return f.listFn(ctx, actor, q)
}
func (f *fakeLeaveService) ListPendingFor(ctx context.Context, actor domain.Actor) ([]leave.LeaveResponse, error) {
	return f.pendingFn(ctx, actor)
}
func (f *fakeLeaveService) Forward(ctx context.Context, actor domain.Actor, id, comment string) (leave.LeaveResponse, error) {
	return f.forwardFn(ctx, actor, id, comment)
}
func (f *fakeLeaveService) Reject(ctx context.Context, actor domain.Actor, id, comment string) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, actor, id, comment)
}
func (f *fakeLeaveService) Submit(ctx context.Context, actor domain.Actor, id string) (leave.LeaveResponse, error) {
	return f.submitFn(ctx, actor, id)
}

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestLeaveHandler_Create(t *testing.T) {
	t.Run("success passes actor and submit flag", func(t *testing.T) {
		actorID := uuid.New().String()
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, actor domain.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, actorID, actor.ID)
				assert.Equal(t, domain.RoleEmployee, actor.Role)
				assert.True(t, req.Submit)
				return leave.LeaveResponse{
					ID:          uuid.New().String(),
					ReferenceNo: "LV-2025-000001",
					RequesterID: actor.ID,
					LeaveType:   req.LeaveType,
					StartDate:   req.StartDate,
					EndDate:     req.EndDate,
					WorkingDays: 5,
					Status:      leave.StatusSubmitted,
					Version:     1,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		body := `{"leave_type":"EARNED","start_date":"2025-03-10","end_date":"2025-03-14","reason":"family","submit":true}`
		c, w := newContext(http.MethodPost, "/leaves", body)
		c.Set("user_id", actorID)
		c.Set("role", "EMPLOYEE")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "LV-2025-000001", got.ReferenceNo)
		assert.Equal(t, 5, got.WorkingDays)
		assert.Equal(t, leave.StatusSubmitted, got.Status)
	})

	t.Run("unknown leave type fails binding", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		c, w := newContext(http.MethodPost, "/leaves", `{"leave_type":"ANNUAL","start_date":"2025-03-10","end_date":"2025-03-14"}`)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("validation failure carries sub kind", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, actor domain.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrSpellLimit
			},
		}
		h := leave.NewHandler(svc)
		c, w := newContext(http.MethodPost, "/leaves", `{"leave_type":"CASUAL","start_date":"2025-03-10","end_date":"2025-03-16"}`)

		h.Create(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
		assert.Equal(t, leaveerrors.SubKindSpellLimit, env.Error.Details["sub_kind"])
	})

	t.Run("unexpected error is internal", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, actor domain.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, errors.New("db down")
			},
		}
		h := leave.NewHandler(svc)
		c, w := newContext(http.MethodPost, "/leaves", `{"leave_type":"EARNED","start_date":"2025-03-10","end_date":"2025-03-14"}`)

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	svc := &fakeLeaveService{
		listFn: func(ctx context.Context, actor domain.Actor, q leave.ListLeaveQuery) ([]leave.LeaveResponse, error) {
			assert.True(t, q.All)
			assert.Equal(t, leave.StatusApproved, q.Status)
			return []leave.LeaveResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
		},
	}
	h := leave.NewHandler(svc)
	c, w := newContext(http.MethodGet, "/leaves?all=true&status=APPROVED&page=1&page_size=2", "")
	c.Set("user_id", uuid.New().String())
	c.Set("role", "HR_ADMIN")

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	var got []leave.LeaveResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 2)
}

func TestLeaveHandler_GetPending(t *testing.T) {
	actorID := uuid.New().String()
	svc := &fakeLeaveService{
		pendingFn: func(ctx context.Context, actor domain.Actor) ([]leave.LeaveResponse, error) {
			assert.Equal(t, actorID, actor.ID)
			assert.Equal(t, domain.RoleDeptHead, actor.Role)
			return []leave.LeaveResponse{{ID: "a", Status: leave.StatusSubmitted}}, nil
		},
	}
	h := leave.NewHandler(svc)
	c, w := newContext(http.MethodGet, "/approvals/pending", "")
	c.Set("user_id", actorID)
	c.Set("role", "DEPT_HEAD")

	h.GetPending(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLeaveHandler_Decisions(t *testing.T) {
	leaveID := uuid.New().String()

	t.Run("forward passes comment and id", func(t *testing.T) {
		svc := &fakeLeaveService{
			forwardFn: func(ctx context.Context, actor domain.Actor, id, comment string) (leave.LeaveResponse, error) {
				assert.Equal(t, leaveID, id)
				assert.Equal(t, "looks fine", comment)
				return leave.LeaveResponse{ID: id, Status: leave.StatusPending, CurrentStage: 1}, nil
			},
		}
		h := leave.NewHandler(svc)
		c, w := newContext(http.MethodPost, "/leaves/"+leaveID+"/forward", `{"comment":"looks fine"}`)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("role", "DEPT_HEAD")

		h.Forward()(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, 1, got.CurrentStage)
	})

	t.Run("forward without body", func(t *testing.T) {
		svc := &fakeLeaveService{
			forwardFn: func(ctx context.Context, actor domain.Actor, id, comment string) (leave.LeaveResponse, error) {
				assert.Empty(t, comment)
				return leave.LeaveResponse{ID: id}, nil
			},
		}
		h := leave.NewHandler(svc)
		c, w := newContext(http.MethodPost, "/leaves/"+leaveID+"/forward", "")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}

		h.Forward()(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("reject maps not current approver", func(t *testing.T) {
		svc := &fakeLeaveService{
			rejectFn: func(ctx context.Context, actor domain.Actor, id, comment string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrNotCurrentApprover
			},
		}
		h := leave.NewHandler(svc)
		c, w := newContext(http.MethodPost, "/leaves/"+leaveID+"/reject", `{"comment":"no"}`)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}

		h.Reject()(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "NOT_CURRENT_APPROVER", env.Error.Code)
	})

	t.Run("submit maps conflicting update", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, actor domain.Actor, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
			},
		}
		h := leave.NewHandler(svc)
		c, w := newContext(http.MethodPost, "/leaves/"+leaveID+"/submit", "")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}

		h.Submit()(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}
