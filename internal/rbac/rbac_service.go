package rbac

import (
	"sort"
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"

	"cdbl-lms/internal/domain"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadPolicy() error
	Enforce(req domain.EnforceRequest) (bool, error)
	Capabilities(role string) []string
}

type service struct {
	enforcer *casbin.Enforcer
	table    map[domain.Role][]domain.Capability
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService loads table into the enforcer. Pass domain.Capabilities in production.
func NewService(enforcer *casbin.Enforcer, table map[domain.Role][]domain.Capability, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	s := &service{enforcer: enforcer, table: table, logger: l}
	if err := s.LoadPolicy(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) LoadPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()

	total := 0
	for role, caps := range s.table {
		for _, c := range caps {
			if _, err := s.enforcer.AddPolicy(string(role), c.Resource, c.Action); err != nil {
				return err
			}
			total++
		}
	}
	s.logger.Info("rbac policy loaded", zap.Int("roles", len(s.table)), zap.Int("rules", total))
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// Capabilities lists "resource:action" pairs for role, sorted, for UI gating.
func (s *service) Capabilities(role string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perms, err := s.enforcer.GetFilteredPolicy(0, role)
	if err != nil {
		s.logger.Warn("rbac capabilities lookup failed", zap.String("role", role), zap.Error(err))
		return []string{}
	}

	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, p[1]+":"+p[2])
	}
	sort.Strings(out)
	return out
}
