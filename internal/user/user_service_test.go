package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cdbl-lms/internal/user"
	usererrors "cdbl-lms/internal/user/errors"
	mock_user "cdbl-lms/internal/user/mock"
)

func setup(t *testing.T) (*mock_user.MockRepository, user.Service) {
	ctrl := gomock.NewController(t)
	mockRepo := mock_user.NewMockRepository(ctrl)
	svc := user.NewService(mockRepo)
	return mockRepo, svc
}

func TestUserService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo, svc := setup(t)

		filter := user.ListFilter{Role: "DEPT_HEAD", ActiveOnly: true}
		mockRepo.EXPECT().
			FindAll(gomock.Any(), filter).
			Return([]user.User{
				{
					ID:       uuid.New(),
					FullName: "Rahim Uddin",
					Email:    "rahim@cdbl.com.bd",
					Role:     "DEPT_HEAD",
					JoinDate: time.Date(2015, 1, 4, 0, 0, 0, 0, time.UTC),
					IsActive: true,
				},
			}, nil)

		res, err := svc.GetAll(ctx, filter)

		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, "rahim@cdbl.com.bd", res[0].Email)
		assert.Equal(t, "2015-01-04", res[0].JoinDate)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().
			FindAll(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("db error"))

		res, err := svc.GetAll(ctx, user.ListFilter{})

		assert.Error(t, err)
		assert.Nil(t, res)
	})
}

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("not found", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetByID(ctx, userID)
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, svc := setup(t)

		_, err := svc.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	deptID := uuid.New().String()
	retire := "2045-06-30"

	base := user.CreateUserRequest{
		FullName:       "Nasima Akter",
		Email:          "nasima@cdbl.com.bd",
		Password:       "s3cret-pass",
		Role:           "EMPLOYEE",
		DepartmentID:   &deptID,
		JoinDate:       "2020-02-01",
		RetirementDate: &retire,
	}

	t.Run("success hashes password", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, u *user.User) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")))
				assert.Equal(t, deptID, u.DepartmentID.String())
				assert.Equal(t, "2045-06-30", u.RetirementDate.Format("2006-01-02"))
				assert.True(t, u.IsActive)
				return nil
			})

		res, err := svc.Create(ctx, base)
		assert.NoError(t, err)
		assert.Equal(t, "EMPLOYEE", res.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		_, err := svc.Create(ctx, base)
		assert.ErrorIs(t, err, usererrors.ErrUserAlreadyExists)
	})

	t.Run("retirement before join", func(t *testing.T) {
		_, svc := setup(t)

		early := "2019-12-31"
		req := base
		req.RetirementDate = &early

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, usererrors.ErrRetirementBeforeJoin)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, svc := setup(t)

		req := base
		req.Role = "OWNER"

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	hash, _ := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)

	t.Run("wrong current password", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().
			FindByID(gomock.Any(), userID.String()).
			Return(&user.User{ID: userID, PasswordHash: string(hash)}, nil)

		err := svc.ChangePassword(ctx, userID.String(), "nope", "new-password")
		assert.ErrorIs(t, err, usererrors.ErrWrongPassword)
	})

	t.Run("success", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().
			FindByID(gomock.Any(), userID.String()).
			Return(&user.User{ID: userID, PasswordHash: string(hash)}, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, u *user.User) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new-password")))
				return nil
			})

		err := svc.ChangePassword(ctx, userID.String(), "old-password", "new-password")
		assert.NoError(t, err)
	})
}

func TestUserService_ToggleStatus(t *testing.T) {
	mockRepo, svc := setup(t)
	userID := uuid.New()

	mockRepo.EXPECT().
		FindByID(gomock.Any(), userID.String()).
		Return(&user.User{ID: userID, IsActive: true}, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, u *user.User) error {
			assert.False(t, u.IsActive)
			return nil
		})

	assert.NoError(t, svc.ToggleStatus(context.Background(), userID.String(), false))
}
