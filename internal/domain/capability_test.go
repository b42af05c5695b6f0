package domain_test

import (
	"testing"

	"cdbl-lms/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	assert.True(t, domain.Can(domain.RoleEmployee, domain.ResourceLeave, domain.ActionCreate))
	assert.False(t, domain.Can(domain.RoleEmployee, domain.ResourceLeave, domain.ActionDecide))
	assert.False(t, domain.Can(domain.RoleEmployee, domain.ResourcePolicy, domain.ActionUpdate))

	for _, r := range []domain.Role{domain.RoleCEO, domain.RoleHRAdmin, domain.RoleHRHead, domain.RoleSystemAdmin} {
		assert.True(t, domain.Can(r, domain.ResourcePolicy, domain.ActionUpdate), string(r))
	}
	assert.False(t, domain.Can(domain.RoleDeptHead, domain.ResourcePolicy, domain.ActionUpdate))
	assert.False(t, domain.Can(domain.Role("GUEST"), domain.ResourceLeave, domain.ActionRead))
}

func TestCapabilitiesDoNotAlias(t *testing.T) {
	// HR_ADMIN extends the shared HR list; the extension must not leak into HR_HEAD.
	assert.True(t, domain.Can(domain.RoleHRAdmin, domain.ResourceJobs, domain.ActionRun))
	assert.False(t, domain.Can(domain.RoleHRHead, domain.ResourceJobs, domain.ActionRun))
	assert.False(t, domain.Can(domain.RoleEmployee, domain.ResourceLeave, domain.ActionReadAll))
}

func TestRoleRank(t *testing.T) {
	assert.Equal(t, 0, domain.RoleEmployee.Rank())
	assert.Less(t, domain.RoleDeptHead.Rank(), domain.RoleHRAdmin.Rank())
	assert.Less(t, domain.RoleHRHead.Rank(), domain.RoleCEO.Rank())
	assert.True(t, domain.LeaveCasual.Valid())
	assert.False(t, domain.LeaveType("ANNUAL").Valid())
}
