package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cdbl-lms/internal/audit"
	auditMock "cdbl-lms/internal/audit/mock"
	"cdbl-lms/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/datatypes"
)

func TestAuditService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := auditMock.NewMockRepository(ctrl)
	svc := audit.NewService(repo)
	ctx := context.Background()

	t.Run("date range is inclusive of the end day", func(t *testing.T) {
		repo.EXPECT().FindAll(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, f audit.ListFilter) ([]audit.AuditLog, error) {
			assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *f.From)
			assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), *f.To)
			assert.Equal(t, "leave_request", f.TargetType)
			return []audit.AuditLog{{
				ID:        uuid.New(),
				ActorRole: "HR_HEAD",
				Action:    audit.ActionLeaveApproved,
				Detail:    datatypes.JSON(`{"days":5}`),
			}}, nil
		})

		resp, err := svc.List(ctx, audit.ListAuditQuery{TargetType: "leave_request", From: "2025-03-01", To: "2025-03-31"})

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, float64(5), resp[0].Detail["days"])
		assert.Nil(t, resp[0].ActorID)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := svc.List(ctx, audit.ListAuditQuery{From: "03/01/2025"})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("repository error", func(t *testing.T) {
		repo.EXPECT().FindAll(ctx, gomock.Any()).Return(nil, errors.New("db down"))

		_, err := svc.List(ctx, audit.ListAuditQuery{})

		assert.Error(t, err)
	})
}
