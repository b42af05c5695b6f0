package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"cdbl-lms/internal/audit"
	auditmock "cdbl-lms/internal/audit/mock"
	"cdbl-lms/internal/balance"
	balancemock "cdbl-lms/internal/balance/mock"
	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/jobs"
	"cdbl-lms/internal/leave"
	leavemock "cdbl-lms/internal/leave/mock"
	"cdbl-lms/internal/policy"
	policymock "cdbl-lms/internal/policy/mock"
	"cdbl-lms/internal/user"
	usermock "cdbl-lms/internal/user/mock"
)

type runnerMocks struct {
	users    *usermock.MockRepository
	leaves   *leavemock.MockRepository
	policies *policymock.MockProvider
	ledger   *balancemock.MockLedger
	audit    *auditmock.MockRecorder
}

func newRunner(t *testing.T) (jobs.Runner, runnerMocks) {
	ctrl := gomock.NewController(t)
	m := runnerMocks{
		users:    usermock.NewMockRepository(ctrl),
		leaves:   leavemock.NewMockRepository(ctrl),
		policies: policymock.NewMockProvider(ctrl),
		ledger:   balancemock.NewMockLedger(ctrl),
		audit:    auditmock.NewMockRecorder(ctrl),
	}
	runner := jobs.NewRunner(jobs.Dependencies{
		Users:    m.users,
		Leaves:   m.leaves,
		Ledger:   m.ledger,
		Policies: m.policies,
		Audit:    m.audit,
		Now:      func() time.Time { return time.Date(2025, 4, 1, 1, 0, 0, 0, time.UTC) },
	})
	return runner, m
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func employee(join time.Time) user.User {
	return user.User{ID: uuid.New(), Role: string(domain.RoleEmployee), JoinDate: join, IsActive: true}
}

func resultFor(results []jobs.UserResult, userID uuid.UUID, leaveType domain.LeaveType) (jobs.UserResult, bool) {
	for _, r := range results {
		if r.UserID == userID.String() && r.LeaveType == string(leaveType) {
			return r, true
		}
	}
	return jobs.UserResult{}, false
}

func TestRunner_RunMonthlyAccrual(t *testing.T) {
	ctx := context.Background()
	asOf := date(2025, 3, 31)

	t.Run("full month accrues two days and zero duty days are skipped", func(t *testing.T) {
		runner, m := newRunner(t)
		onDuty := employee(date(2020, 1, 6))
		notYetJoined := employee(date(2025, 4, 10))

		m.policies.EXPECT().List(gomock.Any()).Return(policy.Defaults(), nil)
		m.users.EXPECT().FindAll(gomock.Any(), user.ListFilter{ActiveOnly: true}).
			Return([]user.User{onDuty, notYetJoined}, nil)
		m.leaves.EXPECT().FindApprovedOverlapping(gomock.Any(), onDuty.ID.String(), date(2025, 3, 1), date(2025, 3, 31)).
			Return(nil, nil)
		m.ledger.EXPECT().Accrue(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, op balance.Operation) (balance.Result, error) {
				assert.Equal(t, onDuty.ID.String(), op.UserID)
				assert.Equal(t, string(domain.LeaveEarned), op.LeaveType)
				assert.Equal(t, 2025, op.Year)
				assert.True(t, op.Days.Equal(decimal.NewFromInt(2)), op.Days.String())
				assert.Equal(t, "accrual:"+onDuty.ID.String()+":EARNED:2025-03", op.IdempotencyKey)
				assert.True(t, op.Actor.IsSystem())
				return balance.Result{Balance: balance.Balance{ID: uuid.New()}, Applied: op.Days}, nil
			})
		m.audit.EXPECT().Record(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e audit.Entry) error {
				assert.Equal(t, audit.ActionBalanceAccrued, e.Action)
				assert.Equal(t, "2025-03", e.Detail["period"])
				return nil
			})

		res, err := runner.RunMonthlyAccrual(ctx, asOf)

		assert.NoError(t, err)
		assert.Equal(t, jobs.JobMonthlyAccrual, res.Job)
		assert.Equal(t, "2025-03", res.Period)
		assert.Equal(t, jobs.Counts{Processed: 2, Applied: 1, Skipped: 1}, res.Counts)

		accrued, ok := resultFor(res.Results, onDuty.ID, domain.LeaveEarned)
		assert.True(t, ok)
		assert.Equal(t, jobs.OutcomeAccrued, accrued.Outcome)
		assert.Equal(t, 31, accrued.DutyDays)
		assert.True(t, accrued.Days.Equal(decimal.NewFromInt(2)))

		skipped, ok := resultFor(res.Results, notYetJoined.ID, domain.LeaveEarned)
		assert.True(t, ok)
		assert.Equal(t, jobs.OutcomeSkipped, skipped.Outcome)
		assert.Equal(t, 0, skipped.DutyDays)
	})

	t.Run("extraordinary leave reduces duty days pro rata", func(t *testing.T) {
		runner, m := newRunner(t)
		u := employee(date(2020, 1, 6))

		m.policies.EXPECT().List(gomock.Any()).Return(policy.Defaults(), nil)
		m.users.EXPECT().FindAll(gomock.Any(), gomock.Any()).Return([]user.User{u}, nil)
		m.leaves.EXPECT().FindApprovedOverlapping(gomock.Any(), u.ID.String(), gomock.Any(), gomock.Any()).
			Return([]leave.LeaveRequest{
				{LeaveType: string(domain.LeaveExtraordinary), StartDate: date(2025, 2, 25), EndDate: date(2025, 3, 10)},
				{LeaveType: string(domain.LeaveCasual), StartDate: date(2025, 3, 17), EndDate: date(2025, 3, 18)},
			}, nil)
		m.ledger.EXPECT().Accrue(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, op balance.Operation) (balance.Result, error) {
				// 21 of 31 days: 2 * 21 / 31 = 1.3548...
				assert.Equal(t, "1.35", op.Days.StringFixed(2))
				return balance.Result{Applied: op.Days}, nil
			})
		m.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

		res, err := runner.RunMonthlyAccrual(ctx, asOf)

		assert.NoError(t, err)
		got, _ := resultFor(res.Results, u.ID, domain.LeaveEarned)
		assert.Equal(t, 21, got.DutyDays)
		assert.Equal(t, jobs.OutcomeAccrued, got.Outcome)
	})

	t.Run("one user failing does not stop the batch", func(t *testing.T) {
		runner, m := newRunner(t)
		broken := employee(date(2020, 1, 6))
		fine := employee(date(2021, 1, 6))

		m.policies.EXPECT().List(gomock.Any()).Return(policy.Defaults(), nil)
		m.users.EXPECT().FindAll(gomock.Any(), gomock.Any()).Return([]user.User{broken, fine}, nil)
		m.leaves.EXPECT().FindApprovedOverlapping(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil).Times(2)
		m.ledger.EXPECT().Accrue(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, op balance.Operation) (balance.Result, error) {
				if op.UserID == broken.ID.String() {
					return balance.Result{}, errors.New("deadlock detected")
				}
				return balance.Result{Applied: op.Days}, nil
			}).Times(2)
		m.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		res, err := runner.RunMonthlyAccrual(ctx, asOf)

		assert.NoError(t, err)
		assert.Equal(t, jobs.Counts{Processed: 2, Applied: 1, Failed: 1}, res.Counts)
		got, _ := resultFor(res.Results, broken.ID, domain.LeaveEarned)
		assert.Equal(t, jobs.OutcomeFailed, got.Outcome)
		assert.Equal(t, "deadlock detected", got.Reason)
	})

	t.Run("rerun for the same month is skipped", func(t *testing.T) {
		runner, m := newRunner(t)
		u := employee(date(2020, 1, 6))

		m.policies.EXPECT().List(gomock.Any()).Return(policy.Defaults(), nil)
		m.users.EXPECT().FindAll(gomock.Any(), gomock.Any()).Return([]user.User{u}, nil)
		m.leaves.EXPECT().FindApprovedOverlapping(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		m.ledger.EXPECT().Accrue(gomock.Any(), gomock.Any()).Return(balance.Result{Duplicate: true}, nil)

		res, err := runner.RunMonthlyAccrual(ctx, asOf)

		assert.NoError(t, err)
		assert.Equal(t, jobs.Counts{Processed: 1, Skipped: 1}, res.Counts)
	})

	t.Run("user lookup failure aborts the run", func(t *testing.T) {
		runner, m := newRunner(t)
		m.policies.EXPECT().List(gomock.Any()).Return(policy.Defaults(), nil)
		m.users.EXPECT().FindAll(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

		_, err := runner.RunMonthlyAccrual(ctx, asOf)

		assert.Error(t, err)
	})
}

func TestRunner_RunAnnualLapse(t *testing.T) {
	ctx := context.Background()
	runner, m := newRunner(t)
	u := employee(date(2020, 1, 6))
	casualBalance := uuid.New()

	m.policies.EXPECT().List(gomock.Any()).Return(policy.Defaults(), nil)
	m.users.EXPECT().FindAll(gomock.Any(), user.ListFilter{ActiveOnly: true}).Return([]user.User{u}, nil)
	m.ledger.EXPECT().Lapse(gomock.Any(), u.ID.String(), gomock.Any(), 2025).
		DoAndReturn(func(ctx context.Context, userID, leaveType string, year int) (balance.LapseResult, error) {
			switch domain.LeaveType(leaveType) {
			case domain.LeaveCasual:
				closed := balance.Balance{ID: casualBalance, Accrued: decimal.NewFromInt(10), Used: decimal.NewFromInt(3)}
				closed.ClosingOverride = decimal.NewNullDecimal(decimal.Zero)
				return balance.LapseResult{Balance: closed, Lapsed: decimal.NewFromInt(7)}, nil
			case domain.LeaveEarned:
				return balance.LapseResult{CarriedForward: decimal.NewFromInt(10)}, nil
			case domain.LeaveExtraordinary, domain.LeaveStudy:
				t.Errorf("uncapped type %s must not be lapsed", leaveType)
			}
			return balance.LapseResult{}, nil
		}).Times(5)
	m.audit.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, e audit.Entry) error {
			assert.Equal(t, audit.ActionBalanceLapsed, e.Action)
			assert.Equal(t, casualBalance.String(), e.TargetID)
			assert.Equal(t, "7", e.Detail["lapsed"])
			return nil
		}).Times(1)

	res, err := runner.RunAnnualLapse(ctx, date(2025, 12, 31))

	assert.NoError(t, err)
	assert.Equal(t, "2025", res.Period)
	assert.Len(t, res.Results, 7)

	casual, _ := resultFor(res.Results, u.ID, domain.LeaveCasual)
	assert.Equal(t, jobs.OutcomeLapsed, casual.Outcome)
	assert.True(t, casual.Days.Equal(decimal.NewFromInt(7)))

	earned, _ := resultFor(res.Results, u.ID, domain.LeaveEarned)
	assert.Equal(t, jobs.OutcomeCarriedForward, earned.Outcome)
	assert.True(t, earned.CarriedForward.Equal(decimal.NewFromInt(10)))

	study, _ := resultFor(res.Results, u.ID, domain.LeaveStudy)
	assert.Equal(t, jobs.OutcomeSkipped, study.Outcome)
}

func TestRunner_RunAnnualLapse_NoBalanceRows(t *testing.T) {
	ctx := context.Background()
	runner, m := newRunner(t)
	u := employee(date(2020, 1, 6))

	m.policies.EXPECT().List(gomock.Any()).Return(policy.Defaults(), nil)
	m.users.EXPECT().FindAll(gomock.Any(), user.ListFilter{ActiveOnly: true}).Return([]user.User{u}, nil)
	m.ledger.EXPECT().Lapse(gomock.Any(), u.ID.String(), gomock.Any(), 2025).
		Return(balance.LapseResult{NoBalance: true}, nil).Times(5)

	res, err := runner.RunAnnualLapse(ctx, date(2025, 12, 31))

	assert.NoError(t, err)
	casual, _ := resultFor(res.Results, u.ID, domain.LeaveCasual)
	assert.Equal(t, jobs.OutcomeSkipped, casual.Outcome)
	assert.Equal(t, "no balance for the year", casual.Reason)
}

func TestDefaultAsOf(t *testing.T) {
	now := date(2025, 1, 1)
	assert.Equal(t, date(2024, 12, 31), jobs.DefaultAsOf(jobs.JobMonthlyAccrual, now))
	assert.Equal(t, date(2024, 12, 31), jobs.DefaultAsOf(jobs.JobAnnualLapse, now))
	assert.Equal(t, date(2025, 2, 28), jobs.DefaultAsOf(jobs.JobMonthlyAccrual, date(2025, 3, 15)))
}
