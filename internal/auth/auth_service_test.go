package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cdbl-lms/internal/auth"
	autherrors "cdbl-lms/internal/auth/errors"
	"cdbl-lms/internal/auth/token"
	"cdbl-lms/internal/config"
	"cdbl-lms/internal/user"
	userMock "cdbl-lms/internal/user/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret-0123456789"

type fakeCaps struct{}

func (fakeCaps) Capabilities(role string) []string {
	return []string{"leave:create", "leave:read"}
}

func authConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       testSecret,
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	}
}

func TestService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := userMock.NewMockRepository(ctrl)
	svc := auth.NewService(repo, fakeCaps{}, authConfig())
	ctx := context.Background()

	pw, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	u := &user.User{
		ID:           uuid.New(),
		FullName:     "Rahim Uddin",
		Email:        "rahim@cdbl.local",
		PasswordHash: string(pw),
		Role:         "EMPLOYEE",
		IsActive:     true,
	}

	t.Run("success", func(t *testing.T) {
		repo.EXPECT().FindByEmail(ctx, u.Email).Return(u, nil)

		pair, resp, err := svc.Login(ctx, u.Email, "password123")

		assert.NoError(t, err)
		assert.Equal(t, u.ID.String(), resp.ID)
		assert.Equal(t, []string{"leave:create", "leave:read"}, resp.Capabilities)

		claims, err := token.Parse(testSecret, pair.AccessToken, token.TypeAccess)
		assert.NoError(t, err)
		assert.Equal(t, "EMPLOYEE", claims.Role)

		_, err = token.Parse(testSecret, pair.AccessToken, token.TypeRefresh)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo.EXPECT().FindByEmail(ctx, u.Email).Return(u, nil)

		_, _, err := svc.Login(ctx, u.Email, "nope")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo.EXPECT().FindByEmail(ctx, "ghost@cdbl.local").Return(nil, gorm.ErrRecordNotFound)

		_, _, err := svc.Login(ctx, "ghost@cdbl.local", "password123")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("database error is not masked", func(t *testing.T) {
		repo.EXPECT().FindByEmail(ctx, u.Email).Return(nil, errors.New("connection reset"))

		_, _, err := svc.Login(ctx, u.Email, "password123")

		assert.EqualError(t, err, "connection reset")
	})

	t.Run("inactive user", func(t *testing.T) {
		inactive := *u
		inactive.IsActive = false
		repo.EXPECT().FindByEmail(ctx, u.Email).Return(&inactive, nil)

		_, _, err := svc.Login(ctx, u.Email, "password123")

		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := userMock.NewMockRepository(ctrl)
	svc := auth.NewService(repo, nil, authConfig())
	ctx := context.Background()

	u := &user.User{ID: uuid.New(), Email: "hr@cdbl.local", Role: "HR_ADMIN", IsActive: true}

	t.Run("success", func(t *testing.T) {
		refresh, _ := token.Generate(testSecret, u.ID.String(), u.Role, token.TypeRefresh, time.Hour, time.Now())
		repo.EXPECT().FindByID(ctx, u.ID.String()).Return(u, nil)

		pair, resp, err := svc.RefreshToken(ctx, refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.Equal(t, "HR_ADMIN", resp.Role)
	})

	t.Run("access token rejected", func(t *testing.T) {
		access, _ := token.Generate(testSecret, u.ID.String(), u.Role, token.TypeAccess, time.Hour, time.Now())

		_, _, err := svc.RefreshToken(ctx, access)

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("expired", func(t *testing.T) {
		refresh, _ := token.Generate(testSecret, u.ID.String(), u.Role, token.TypeRefresh, time.Hour, time.Now().Add(-2*time.Hour))

		_, _, err := svc.RefreshToken(ctx, refresh)

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestService_GetMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := userMock.NewMockRepository(ctrl)
	svc := auth.NewService(repo, nil, authConfig())
	ctx := context.Background()

	repo.EXPECT().FindByID(ctx, "missing").Return(nil, gorm.ErrRecordNotFound)
	_, err := svc.GetMe(ctx, "missing")
	assert.ErrorIs(t, err, autherrors.ErrUserNotFound)

	dept := uuid.New()
	u := &user.User{ID: uuid.New(), Email: "e@cdbl.local", Role: "EMPLOYEE", DepartmentID: &dept}
	repo.EXPECT().FindByID(ctx, u.ID.String()).Return(u, nil)
	resp, err := svc.GetMe(ctx, u.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, dept.String(), *resp.DepartmentID)
}
