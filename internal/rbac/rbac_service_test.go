package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/rbac/infra"
)

func newTestService(t *testing.T, table map[domain.Role][]domain.Capability) Service {
	t.Helper()
	e, err := infra.NewEnforcer()
	assert.NoError(t, err)
	svc, err := NewService(e, table)
	assert.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t, domain.Capabilities)

	allowed, err := svc.Enforce(domain.EnforceRequest{Role: "HR_HEAD", Resource: "policy", Action: "update"})
	assert.NoError(t, err)
	assert.True(t, allowed)

	denied, err := svc.Enforce(domain.EnforceRequest{Role: "EMPLOYEE", Resource: "policy", Action: "update"})
	assert.NoError(t, err)
	assert.False(t, denied)

	unknown, err := svc.Enforce(domain.EnforceRequest{Role: "GUEST", Resource: "leave", Action: "read"})
	assert.NoError(t, err)
	assert.False(t, unknown)
}

func TestRBACService_MatchesCapabilityTable(t *testing.T) {
	svc := newTestService(t, domain.Capabilities)

	resources := []string{"leave", "balance", "policy", "holiday", "audit", "report", "jobs", "user", "notification"}
	actions := []string{"create", "read", "read_all", "decide", "cancel", "recall", "update", "manage", "adjust", "run", "download"}

	for role := range domain.Capabilities {
		for _, res := range resources {
			for _, act := range actions {
				allowed, err := svc.Enforce(domain.EnforceRequest{Role: string(role), Resource: res, Action: act})
				assert.NoError(t, err)
				assert.Equal(t, domain.Can(role, res, act), allowed, "%s %s:%s", role, res, act)
			}
		}
	}
}

func TestRBACService_Capabilities(t *testing.T) {
	svc := newTestService(t, map[domain.Role][]domain.Capability{
		domain.RoleEmployee: {
			{Resource: "leave", Action: "read"},
			{Resource: "leave", Action: "create"},
		},
	})

	assert.Equal(t, []string{"leave:create", "leave:read"}, svc.Capabilities("EMPLOYEE"))
	assert.Empty(t, svc.Capabilities("CEO"))
}
