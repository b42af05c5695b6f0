package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cdbl-lms/internal/domain"
)

func TestDefaults(t *testing.T) {
	byType := map[string]LeavePolicy{}
	for _, p := range Defaults() {
		byType[p.LeaveType] = p
	}

	assert.Len(t, byType, len(domain.LeaveTypes))

	cl := byType["CASUAL"]
	assert.Equal(t, 3, cl.MaxConsecutiveDays)
	assert.True(t, cl.WorkingDaysOnly)
	assert.False(t, cl.CarryForwardEligible)
	assert.True(t, cl.Skips(domain.RoleHRHead))
	assert.False(t, cl.Skips(domain.RoleDeptHead))

	el := byType["EARNED"]
	assert.True(t, el.CarryForwardEligible)
	assert.Equal(t, "60", el.CarryForwardLimit.String())
	assert.Equal(t, []domain.Role{domain.RoleCEO}, el.SkipRoles())

	ml := byType["MEDICAL"]
	assert.True(t, ml.NoticeExempt)
	assert.False(t, ml.RequiresCertificate(3))
	assert.True(t, ml.RequiresCertificate(4))

	assert.False(t, byType["EXTRAORDINARY"].CountsAsDuty)
	assert.Empty(t, byType["STUDY"].SkipRoles())
	assert.Equal(t, 365, byType["STUDY"].RetirementBufferDays)
}
