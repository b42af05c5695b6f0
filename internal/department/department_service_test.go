package department_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"cdbl-lms/internal/department"
	departmenterrors "cdbl-lms/internal/department/errors"
	departmentMock "cdbl-lms/internal/department/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   department.Service
	repo      *departmentMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	dbRedis, redisMock := redismock.NewClientMock()
	repo := departmentMock.NewMockRepository(ctrl)

	svc := department.NewService(db, repo, dbRedis)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestDepartmentService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit returns cached list", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expected := []department.DepartmentResponse{
			{ID: "d-1", Name: "Finance"},
			{ID: "d-2", Name: "IT"},
		}
		raw, _ := json.Marshal(expected)
		deps.redismock.ExpectGet(department.DepartmentAllKey).SetVal(string(raw))

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Equal(t, expected, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cache miss loads from repository and fills cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		depts := []department.Department{{ID: uuid.New(), Name: "Operations"}}
		deps.redismock.ExpectGet(department.DepartmentAllKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return(depts, nil)

		raw, _ := json.Marshal([]department.DepartmentResponse{{
			ID:        depts[0].ID.String(),
			Name:      "Operations",
			CreatedAt: "0001-01-01T00:00:00Z",
			UpdatedAt: "0001-01-01T00:00:00Z",
		}})
		deps.redismock.ExpectSet(department.DepartmentAllKey, raw, department.CacheTTL).SetVal("OK")

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Operations", resp[0].Name)
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redismock.ExpectGet(department.DepartmentAllKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return(nil, errors.New("db down"))

		resp, err := deps.service.GetAll(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(department.DepartmentAllKey).SetVal(1)

		resp, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "Audit"})

		assert.NoError(t, err)
		assert.Equal(t, "Audit", resp.Name)
		assert.Nil(t, resp.HeadID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid head id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		bad := "not-a-uuid"
		_, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "Audit", HeadID: &bad})

		assert.ErrorIs(t, err, departmenterrors.ErrInvalidHeadID)
	})

	t.Run("duplicate name", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(errors.New("ERROR: duplicate key value violates unique constraint"))

		_, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "Audit"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentExists)
	})
}

func TestDepartmentService_GetByID(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	defer deps.db.Close()

	id := uuid.New()
	head := uuid.New()

	deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&department.Department{ID: id, Name: "HR", HeadID: &head}, nil)
	resp, err := deps.service.GetByID(ctx, id.String())
	assert.NoError(t, err)
	assert.Equal(t, head.String(), *resp.HeadID)

	deps.repo.EXPECT().FindByID(ctx, "missing").Return(nil, gorm.ErrRecordNotFound)
	_, err = deps.service.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
}

func TestDepartmentService_Update(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	defer deps.db.Close()

	id := uuid.New()
	head := uuid.New().String()

	expectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&department.Department{ID: id, Name: "Old"}, nil)
	deps.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, d *department.Department) error {
		assert.Equal(t, "New", d.Name)
		assert.Equal(t, head, d.HeadID.String())
		return nil
	})
	deps.redismock.ExpectDel(department.DepartmentAllKey).SetVal(1)

	resp, err := deps.service.Update(ctx, id.String(), department.UpdateDepartmentRequest{Name: "New", HeadID: &head})

	assert.NoError(t, err)
	assert.Equal(t, "New", resp.Name)
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().Delete(ctx, "d-1").Return(nil)
	deps.redismock.ExpectDel(department.DepartmentAllKey).SetVal(1)

	assert.NoError(t, deps.service.Delete(ctx, "d-1"))
}
