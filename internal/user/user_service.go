package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/shared/contextutil"
	"cdbl-lms/internal/shared/dateutil"
	"cdbl-lms/internal/shared/pgerr"
	usererrors "cdbl-lms/internal/user/errors"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, filter ListFilter) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	ToggleStatus(ctx context.Context, id string, isActive bool) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	ForceResetPassword(ctx context.Context, userID, newPassword string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Debug("create user requested", zap.String("email", req.Email), zap.String("role", req.Role))

	if !domain.Role(req.Role).Valid() {
		return UserResponse{}, usererrors.ErrInvalidRole
	}
	deptID, joinDate, retirement, err := parseProfile(req.DepartmentID, req.JoinDate, req.RetirementDate)
	if err != nil {
		return UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("hash password failed", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		ID:             uuid.New(),
		FullName:       req.FullName,
		Email:          req.Email,
		PasswordHash:   string(hashed),
		Role:           req.Role,
		DepartmentID:   deptID,
		JoinDate:       joinDate,
		RetirementDate: retirement,
		IsActive:       true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if pgerr.IsUniqueViolation(err, "") {
			return UserResponse{}, usererrors.ErrUserAlreadyExists
		}
		l.Error("create user failed", zap.Error(err))
		return UserResponse{}, err
	}

	l.Info("user created", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if !domain.Role(req.Role).Valid() {
		return UserResponse{}, usererrors.ErrInvalidRole
	}
	deptID, joinDate, retirement, err := parseProfile(req.DepartmentID, req.JoinDate, req.RetirementDate)
	if err != nil {
		return UserResponse{}, err
	}

	u, err := s.find(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}

	u.FullName = req.FullName
	u.Role = req.Role
	u.DepartmentID = deptID
	u.JoinDate = joinDate
	u.RetirementDate = retirement

	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("update user failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}

	l.Info("user updated", zap.String("user_id", id))
	return mapToResponse(*u), nil
}

func (s *service) ToggleStatus(ctx context.Context, id string, isActive bool) error {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	u.IsActive = isActive
	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("update user status failed", zap.String("user_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.find(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return usererrors.ErrWrongPassword
	}

	return s.setPassword(ctx, u, newPassword)
}

func (s *service) ForceResetPassword(ctx context.Context, userID, newPassword string) error {
	u, err := s.find(ctx, userID)
	if err != nil {
		return err
	}
	return s.setPassword(ctx, u, newPassword)
}

func (s *service) setPassword(ctx context.Context, u *User, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("hash password failed", zap.Error(err))
		return err
	}
	u.PasswordHash = string(hashed)
	return s.repo.Update(ctx, u)
}

func (s *service) find(ctx context.Context, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func parseProfile(departmentID *string, joinDate string, retirementDate *string) (*uuid.UUID, time.Time, *time.Time, error) {
	var dept *uuid.UUID
	if departmentID != nil && *departmentID != "" {
		id, err := uuid.Parse(*departmentID)
		if err != nil {
			return nil, time.Time{}, nil, usererrors.ErrInvalidDepartmentID
		}
		dept = &id
	}

	join, err := dateutil.Parse(joinDate)
	if err != nil {
		return nil, time.Time{}, nil, usererrors.ErrInvalidDate
	}
	retirement, err := dateutil.ParseOptional(retirementDate)
	if err != nil {
		return nil, time.Time{}, nil, usererrors.ErrInvalidDate
	}
	if retirement != nil && !retirement.After(join) {
		return nil, time.Time{}, nil, usererrors.ErrRetirementBeforeJoin
	}
	return dept, join, retirement, nil
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:             u.ID.String(),
		FullName:       u.FullName,
		Email:          u.Email,
		Role:           u.Role,
		JoinDate:       dateutil.Format(u.JoinDate),
		RetirementDate: dateutil.FormatOptional(u.RetirementDate),
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if u.DepartmentID != nil {
		v := u.DepartmentID.String()
		resp.DepartmentID = &v
	}
	return resp
}
