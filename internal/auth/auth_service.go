package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	autherrors "cdbl-lms/internal/auth/errors"
	"cdbl-lms/internal/auth/token"
	"cdbl-lms/internal/config"
	"cdbl-lms/internal/shared/contextutil"
	"cdbl-lms/internal/user"
)

// CapabilityLister is satisfied by rbac.Service.
type CapabilityLister interface {
	Capabilities(role string) []string
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	repo   user.Repository
	caps   CapabilityLister
	cfg    config.AuthConfig
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo user.Repository, caps CapabilityLister, cfg config.AuthConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, caps: caps, cfg: cfg, now: time.Now, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("failed to load user for login", zap.Error(err))
			return TokenPair{}, AuthResponse{}, err
		}
		log.Warn("login with unknown email", zap.String("email", email))
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		log.Warn("login with wrong password", zap.String("user_id", u.ID.String()))
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserInactive
	}

	pair, err := s.issue(u)
	if err != nil {
		log.Error("failed to sign token", zap.Error(err))
		return TokenPair{}, AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	log.Info("user logged in", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return pair, s.toResponse(u), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	claims, err := token.Parse(s.cfg.JWTSecret, refreshToken, token.TypeRefresh)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserNotFound
	}
	if !u.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserInactive
	}

	pair, err := s.issue(u)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return pair, s.toResponse(u), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := s.toResponse(u)
	return &resp, nil
}

func (s *service) issue(u *user.User) (TokenPair, error) {
	now := s.now()
	access, err := token.Generate(s.cfg.JWTSecret, u.ID.String(), u.Role, token.TypeAccess, s.cfg.AccessTokenTTL, now)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := token.Generate(s.cfg.JWTSecret, u.ID.String(), u.Role, token.TypeRefresh, s.cfg.RefreshTokenTTL, now)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) toResponse(u *user.User) AuthResponse {
	resp := AuthResponse{
		ID:       u.ID.String(),
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
	if u.DepartmentID != nil {
		v := u.DepartmentID.String()
		resp.DepartmentID = &v
	}
	if s.caps != nil {
		resp.Capabilities = s.caps.Capabilities(u.Role)
	}
	return resp
}
