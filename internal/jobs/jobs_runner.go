package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cdbl-lms/internal/audit"
	"cdbl-lms/internal/balance"
	"cdbl-lms/internal/domain"
	jobserrors "cdbl-lms/internal/jobs/errors"
	"cdbl-lms/internal/leave"
	"cdbl-lms/internal/policy"
	"cdbl-lms/internal/shared/contextutil"
	"cdbl-lms/internal/shared/dateutil"
	"cdbl-lms/internal/user"
)

const defaultConcurrency = 4

// Runner holds the only two scheduled entry points. Each user is processed
// in its own ledger transaction; one user failing is recorded in the result
// and the batch carries on.
//
//go:generate mockgen -source=jobs_runner.go -destination=mock/jobs_runner_mock.go -package=mock
type Runner interface {
	// RunMonthlyAccrual credits the calendar month containing asOf.
	RunMonthlyAccrual(ctx context.Context, asOf time.Time) (RunResult, error)
	// RunAnnualLapse closes the leave year containing asOf.
	RunAnnualLapse(ctx context.Context, asOf time.Time) (RunResult, error)
}

// Run dispatches job by name.
func Run(ctx context.Context, r Runner, job string, asOf time.Time) (RunResult, error) {
	switch job {
	case JobMonthlyAccrual:
		return r.RunMonthlyAccrual(ctx, asOf)
	case JobAnnualLapse:
		return r.RunAnnualLapse(ctx, asOf)
	default:
		return RunResult{}, jobserrors.ErrUnknownJob
	}
}

type Dependencies struct {
	Users       user.Repository
	Leaves      leave.Repository
	Ledger      balance.Ledger
	Policies    policy.Provider
	Audit       audit.Recorder
	Concurrency int
	Now         func() time.Time
}

type runner struct {
	users       user.Repository
	leaves      leave.Repository
	ledger      balance.Ledger
	policies    policy.Provider
	audit       audit.Recorder
	concurrency int
	now         func() time.Time
	logger      *zap.Logger
}

func NewRunner(deps Dependencies, logger ...*zap.Logger) Runner {
	l := zap.L().Named("jobs.runner")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("jobs.runner")
	}
	concurrency := deps.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &runner{
		users:       deps.Users,
		leaves:      deps.Leaves,
		ledger:      deps.Ledger,
		policies:    deps.Policies,
		audit:       deps.Audit,
		concurrency: concurrency,
		now:         now,
		logger:      l,
	}
}

func (r *runner) RunMonthlyAccrual(ctx context.Context, asOf time.Time) (RunResult, error) {
	month := dateutil.MonthStart(asOf)
	period := month.Format("2006-01")
	log := contextutil.GetLogger(ctx, r.logger).With(
		zap.String("job", JobMonthlyAccrual),
		zap.String("period", period),
	)
	started := r.now()

	policies, err := r.policies.List(ctx)
	if err != nil {
		log.Error("accrual load policies failed", zap.Error(err))
		return RunResult{}, err
	}
	var accruing []policy.LeavePolicy
	nonDuty := make(map[string]bool)
	for _, p := range policies {
		if p.AccrualPerMonth.IsPositive() {
			accruing = append(accruing, p)
		}
		if !p.CountsAsDuty {
			nonDuty[p.LeaveType] = true
		}
	}

	users, err := r.users.FindAll(ctx, user.ListFilter{ActiveOnly: true})
	if err != nil {
		log.Error("accrual load users failed", zap.Error(err))
		return RunResult{}, err
	}

	results := r.forEachUser(ctx, users, func(ctx context.Context, u user.User) []UserResult {
		return r.accrueUser(ctx, u, accruing, nonDuty, month)
	})

	res := RunResult{
		Job:        JobMonthlyAccrual,
		Period:     period,
		StartedAt:  started,
		FinishedAt: r.now(),
		Counts:     countResults(results),
		Results:    results,
	}
	log.Info("monthly accrual finished",
		zap.Int("processed", res.Counts.Processed),
		zap.Int("accrued", res.Counts.Applied),
		zap.Int("skipped", res.Counts.Skipped),
		zap.Int("failed", res.Counts.Failed),
	)
	return res, nil
}

func (r *runner) accrueUser(ctx context.Context, u user.User, accruing []policy.LeavePolicy, nonDuty map[string]bool, month time.Time) []UserResult {
	userID := u.ID.String()
	period := month.Format("2006-01")

	results := make([]UserResult, 0, len(accruing))
	duty, dutyErr := r.dutyDays(ctx, u, month, nonDuty)

	for _, p := range accruing {
		res := UserResult{UserID: userID, LeaveType: p.LeaveType, DutyDays: duty}
		if dutyErr != nil {
			results = append(results, failed(res, dutyErr))
			continue
		}
		if duty == 0 {
			res.Outcome = OutcomeSkipped
			res.Reason = "no duty days in period"
			results = append(results, res)
			continue
		}

		days := p.AccrualPerMonth.
			Mul(decimal.NewFromInt(int64(duty))).
			Div(decimal.NewFromInt(int64(dateutil.DaysInMonth(month)))).
			Round(2)
		if !days.IsPositive() {
			res.Outcome = OutcomeSkipped
			res.Reason = "accrual rounds to zero"
			results = append(results, res)
			continue
		}

		out, err := r.ledger.Accrue(ctx, balance.Operation{
			UserID:         userID,
			LeaveType:      p.LeaveType,
			Year:           month.Year(),
			Days:           days,
			ReferenceID:    period,
			IdempotencyKey: fmt.Sprintf("accrual:%s:%s:%s", userID, p.LeaveType, period),
			Note:           fmt.Sprintf("monthly accrual %s (%d duty days)", period, duty),
			Actor:          domain.SystemActor,
		})
		if err != nil {
			results = append(results, failed(res, err))
			continue
		}
		switch {
		case out.Duplicate:
			res.Outcome = OutcomeSkipped
			res.Reason = "already accrued for period"
		case !out.Applied.IsPositive():
			res.Outcome = OutcomeSkipped
			res.Reason = "annual cap reached"
		default:
			res.Outcome = OutcomeAccrued
			res.Days = out.Applied
			audit.RecordBestEffort(ctx, r.audit, r.logger, audit.Entry{
				Actor:      domain.SystemActor,
				Action:     audit.ActionBalanceAccrued,
				TargetType: audit.TargetBalance,
				TargetID:   out.Balance.ID.String(),
				Detail: map[string]any{
					"user_id":    userID,
					"leave_type": p.LeaveType,
					"period":     period,
					"duty_days":  duty,
					"days":       out.Applied.String(),
				},
			})
		}
		results = append(results, res)
	}
	return results
}

// dutyDays counts the days of month the user was employed, less days on
// approved leave of a type that does not count as duty.
func (r *runner) dutyDays(ctx context.Context, u user.User, month time.Time, nonDuty map[string]bool) (int, error) {
	from := dateutil.MonthStart(month)
	to := dateutil.MonthEnd(month)

	if join := dateutil.Day(u.JoinDate); join.After(from) {
		from = join
	}
	if u.RetirementDate != nil {
		if retire := dateutil.Day(*u.RetirementDate); retire.Before(to) {
			to = retire
		}
	}
	if from.After(to) {
		return 0, nil
	}
	duty := dateutil.DaysBetween(from, to) + 1

	if len(nonDuty) == 0 {
		return duty, nil
	}
	approved, err := r.leaves.FindApprovedOverlapping(ctx, u.ID.String(), from, to)
	if err != nil {
		return 0, err
	}
	for _, l := range approved {
		if !nonDuty[l.LeaveType] {
			continue
		}
		start, end := dateutil.Day(l.StartDate), dateutil.Day(l.EndDate)
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		if !start.After(end) {
			duty -= dateutil.DaysBetween(start, end) + 1
		}
	}
	return max(duty, 0), nil
}

func (r *runner) RunAnnualLapse(ctx context.Context, asOf time.Time) (RunResult, error) {
	year := asOf.Year()
	period := fmt.Sprintf("%d", year)
	log := contextutil.GetLogger(ctx, r.logger).With(
		zap.String("job", JobAnnualLapse),
		zap.String("period", period),
	)
	started := r.now()

	policies, err := r.policies.List(ctx)
	if err != nil {
		log.Error("lapse load policies failed", zap.Error(err))
		return RunResult{}, err
	}
	users, err := r.users.FindAll(ctx, user.ListFilter{ActiveOnly: true})
	if err != nil {
		log.Error("lapse load users failed", zap.Error(err))
		return RunResult{}, err
	}

	results := r.forEachUser(ctx, users, func(ctx context.Context, u user.User) []UserResult {
		return r.lapseUser(ctx, u, policies, year)
	})

	res := RunResult{
		Job:        JobAnnualLapse,
		Period:     period,
		StartedAt:  started,
		FinishedAt: r.now(),
		Counts:     countResults(results),
		Results:    results,
	}
	log.Info("annual lapse finished",
		zap.Int("processed", res.Counts.Processed),
		zap.Int("applied", res.Counts.Applied),
		zap.Int("skipped", res.Counts.Skipped),
		zap.Int("failed", res.Counts.Failed),
	)
	return res, nil
}

func (r *runner) lapseUser(ctx context.Context, u user.User, policies []policy.LeavePolicy, year int) []UserResult {
	userID := u.ID.String()
	results := make([]UserResult, 0, len(policies))

	for _, p := range policies {
		res := UserResult{UserID: userID, LeaveType: p.LeaveType}
		if p.Uncapped {
			res.Outcome = OutcomeSkipped
			res.Reason = "uncapped type"
			results = append(results, res)
			continue
		}

		out, err := r.ledger.Lapse(ctx, userID, p.LeaveType, year)
		if err != nil {
			results = append(results, failed(res, err))
			continue
		}
		res.CarriedForward = out.CarriedForward

		switch {
		case out.NoBalance:
			res.Outcome = OutcomeSkipped
			res.Reason = "no balance for the year"
		case out.Duplicate:
			res.Outcome = OutcomeSkipped
			res.Reason = "year already closed"
		case out.Changed():
			res.Outcome = OutcomeLapsed
			res.Days = out.Lapsed.Add(out.Excess)
			audit.RecordBestEffort(ctx, r.audit, r.logger, audit.Entry{
				Actor:      domain.SystemActor,
				Action:     audit.ActionBalanceLapsed,
				TargetType: audit.TargetBalance,
				TargetID:   out.Balance.ID.String(),
				Detail: map[string]any{
					"user_id":         userID,
					"leave_type":      p.LeaveType,
					"year":            year,
					"lapsed":          out.Lapsed.String(),
					"excess":          out.Excess.String(),
					"carried_forward": out.CarriedForward.String(),
				},
			})
		case out.CarriedForward.IsPositive():
			res.Outcome = OutcomeCarriedForward
		default:
			res.Outcome = OutcomeSkipped
			res.Reason = "nothing to lapse"
		}
		results = append(results, res)
	}
	return results
}

// forEachUser runs fn for every user with bounded parallelism and returns
// the results ordered by user and leave type.
func (r *runner) forEachUser(ctx context.Context, users []user.User, fn func(ctx context.Context, u user.User) []UserResult) []UserResult {
	var (
		mu      sync.Mutex
		results []UserResult
		g       errgroup.Group
	)
	g.SetLimit(r.concurrency)

	for _, u := range users {
		g.Go(func() error {
			var out []UserResult
			if err := ctx.Err(); err != nil {
				out = []UserResult{failed(UserResult{UserID: u.ID.String()}, err)}
			} else {
				out = fn(ctx, u)
			}
			mu.Lock()
			results = append(results, out...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool {
		if results[i].UserID != results[j].UserID {
			return results[i].UserID < results[j].UserID
		}
		return results[i].LeaveType < results[j].LeaveType
	})
	return results
}

func failed(res UserResult, err error) UserResult {
	res.Outcome = OutcomeFailed
	res.Reason = err.Error()
	return res
}
