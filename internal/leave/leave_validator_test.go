package leave_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	balanceerrors "cdbl-lms/internal/balance/errors"
	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/leave"
	leaveerrors "cdbl-lms/internal/leave/errors"
	"cdbl-lms/internal/policy"
)

func day(v string) time.Time {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		panic(err)
	}
	return t
}

func defaultPolicy(t domain.LeaveType) policy.LeavePolicy {
	for _, p := range policy.Defaults() {
		if p.LeaveType == string(t) {
			return p
		}
	}
	panic("no default policy for " + string(t))
}

func proposal(start, end string) leave.Proposal {
	return leave.Proposal{
		Start:       day(start),
		End:         day(end),
		SubmittedOn: day("2024-01-02"),
		JoinDate:    day("2015-06-01"),
	}
}

func TestWorkingDays(t *testing.T) {
	t.Run("calendar days when not working days only", func(t *testing.T) {
		assert.Equal(t, 6, leave.WorkingDays(day("2024-10-23"), day("2024-10-28"), false, nil))
		assert.Equal(t, 1, leave.WorkingDays(day("2024-10-23"), day("2024-10-23"), false, nil))
	})

	t.Run("weekends and holidays excluded when working days only", func(t *testing.T) {
		// 2024-10-25 and 26 are Friday and Saturday.
		assert.Equal(t, 4, leave.WorkingDays(day("2024-10-23"), day("2024-10-28"), true, nil))
		assert.Equal(t, 3, leave.WorkingDays(day("2024-10-23"), day("2024-10-28"), true, map[string]bool{"2024-10-24": true}))
	})

	t.Run("reversed range is zero", func(t *testing.T) {
		assert.Equal(t, 0, leave.WorkingDays(day("2024-10-28"), day("2024-10-23"), false, nil))
	})
}

func TestValidate(t *testing.T) {
	ten := decimal.NewFromInt(10)

	t.Run("casual leave spell boundary", func(t *testing.T) {
		cl := defaultPolicy(domain.LeaveCasual)

		days, err := leave.Validate(proposal("2025-03-10", "2025-03-12"), cl, ten, nil)
		assert.NoError(t, err)
		assert.Equal(t, 3, days)

		days, err = leave.Validate(proposal("2025-03-10", "2025-03-13"), cl, ten, nil)
		assert.ErrorIs(t, err, leaveerrors.ErrSpellLimit)
		assert.Equal(t, leaveerrors.SubKindSpellLimit, leaveerrors.SubKind(err))
		assert.Equal(t, 4, days)
	})

	t.Run("casual spell counts weekend days", func(t *testing.T) {
		cl := defaultPolicy(domain.LeaveCasual)

		// Thursday to Sunday: two working days but a four day spell.
		days, err := leave.Validate(proposal("2024-10-24", "2024-10-27"), cl, ten, nil)
		assert.ErrorIs(t, err, leaveerrors.ErrSpellLimit)
		assert.Equal(t, 2, days)

		_, err = leave.Validate(proposal("2024-10-23", "2024-10-27"), cl, ten, nil)
		assert.ErrorIs(t, err, leaveerrors.ErrSpellLimit)

		// Thursday to Saturday stays within the spell and debits one day.
		days, err = leave.Validate(proposal("2024-10-24", "2024-10-26"), cl, ten, nil)
		assert.NoError(t, err)
		assert.Equal(t, 1, days)
	})

	t.Run("earned leave counts calendar days", func(t *testing.T) {
		days, err := leave.Validate(proposal("2024-10-23", "2024-10-28"), defaultPolicy(domain.LeaveEarned), ten, nil)
		assert.NoError(t, err)
		assert.Equal(t, 6, days)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := leave.Validate(proposal("2025-03-12", "2025-03-10"), defaultPolicy(domain.LeaveEarned), ten, nil)
		assert.Equal(t, leaveerrors.SubKindDateRange, leaveerrors.SubKind(err))
	})

	t.Run("only weekend days is a date range failure", func(t *testing.T) {
		_, err := leave.Validate(proposal("2025-03-14", "2025-03-15"), defaultPolicy(domain.LeaveCasual), ten, nil)
		assert.Equal(t, leaveerrors.SubKindDateRange, leaveerrors.SubKind(err))
	})

	t.Run("before join date", func(t *testing.T) {
		p := proposal("2015-05-20", "2015-05-21")
		_, err := leave.Validate(p, defaultPolicy(domain.LeaveEarned), ten, nil)
		assert.Equal(t, leaveerrors.SubKindBeforeJoinDate, leaveerrors.SubKind(err))
	})

	t.Run("study leave inside retirement window", func(t *testing.T) {
		p := proposal("2025-06-01", "2025-06-30")
		retire := day("2026-01-31")
		p.RetirementDate = &retire
		_, err := leave.Validate(p, defaultPolicy(domain.LeaveStudy), decimal.Zero, nil)
		assert.Equal(t, leaveerrors.SubKindRetirementWindow, leaveerrors.SubKind(err))

		retire = day("2027-01-31")
		_, err = leave.Validate(p, defaultPolicy(domain.LeaveStudy), decimal.Zero, nil)
		assert.NoError(t, err)
	})

	t.Run("min days", func(t *testing.T) {
		pol := defaultPolicy(domain.LeaveEarned)
		pol.MinDays = 2
		_, err := leave.Validate(proposal("2025-03-10", "2025-03-10"), pol, ten, nil)
		assert.Equal(t, leaveerrors.SubKindMinDays, leaveerrors.SubKind(err))
	})

	t.Run("notice period", func(t *testing.T) {
		p := proposal("2025-03-10", "2025-03-12")
		p.SubmittedOn = day("2025-03-01")
		_, err := leave.Validate(p, defaultPolicy(domain.LeaveEarned), ten, nil)
		assert.Equal(t, leaveerrors.SubKindNoticePeriod, leaveerrors.SubKind(err))

		_, err = leave.Validate(p, defaultPolicy(domain.LeaveMedical), ten, nil)
		assert.NoError(t, err)
	})

	t.Run("spell limit is checked before notice", func(t *testing.T) {
		p := proposal("2025-03-10", "2025-03-13")
		p.SubmittedOn = day("2025-03-10")
		pol := defaultPolicy(domain.LeaveCasual)
		pol.NoticeDaysRequired = 5
		_, err := leave.Validate(p, pol, ten, nil)
		assert.Equal(t, leaveerrors.SubKindSpellLimit, leaveerrors.SubKind(err))
	})

	t.Run("insufficient balance unless uncapped", func(t *testing.T) {
		_, err := leave.Validate(proposal("2025-03-10", "2025-03-14"), defaultPolicy(domain.LeaveEarned), decimal.NewFromInt(4), nil)
		assert.ErrorIs(t, err, balanceerrors.ErrInsufficientBalance)
		assert.Empty(t, leaveerrors.SubKind(err))

		_, err = leave.Validate(proposal("2025-03-10", "2025-03-14"), defaultPolicy(domain.LeaveExtraordinary), decimal.Zero, nil)
		assert.NoError(t, err)
	})
}

func TestValidateCertificate(t *testing.T) {
	ml := defaultPolicy(domain.LeaveMedical)

	assert.NoError(t, leave.ValidateCertificate(ml, 3, false))
	assert.ErrorIs(t, leave.ValidateCertificate(ml, 4, false), leaveerrors.ErrCertificateRequired)
	assert.NoError(t, leave.ValidateCertificate(ml, 4, true))
	assert.NoError(t, leave.ValidateCertificate(defaultPolicy(domain.LeaveEarned), 20, false))
}
