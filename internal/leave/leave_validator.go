package leave

import (
	"time"

	"github.com/shopspring/decimal"

	balanceerrors "cdbl-lms/internal/balance/errors"
	leaveerrors "cdbl-lms/internal/leave/errors"
	"cdbl-lms/internal/policy"
	"cdbl-lms/internal/shared/dateutil"
)

// Weekend lists the non-working weekdays for working-days-only types.
var Weekend = map[time.Weekday]bool{
	time.Friday:   true,
	time.Saturday: true,
}

// Proposal is a leave request as seen by the validator.
type Proposal struct {
	Start          time.Time
	End            time.Time
	SubmittedOn    time.Time
	JoinDate       time.Time
	RetirementDate *time.Time
}

// WorkingDays counts the days of [start, end]. Weekends and holidays are
// excluded only when workingDaysOnly is set.
func WorkingDays(start, end time.Time, workingDaysOnly bool, holidays map[string]bool) int {
	start, end = dateutil.Day(start), dateutil.Day(end)
	if end.Before(start) {
		return 0
	}
	if !workingDaysOnly {
		return dateutil.DaysBetween(start, end) + 1
	}

	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if Weekend[d.Weekday()] || holidays[dateutil.Format(d)] {
			continue
		}
		n++
	}
	return n
}

// Validate runs the admission checks in order and returns the working-day
// count with the first failure. The certificate rule is left to
// ValidateCertificate because the document may be attached after submission.
func Validate(p Proposal, pol policy.LeavePolicy, remaining decimal.Decimal, holidays map[string]bool) (int, error) {
	start, end := dateutil.Day(p.Start), dateutil.Day(p.End)

	if end.Before(start) {
		return 0, leaveerrors.ErrDateRange
	}
	if start.Before(dateutil.Day(p.JoinDate)) {
		return 0, leaveerrors.ErrBeforeJoinDate
	}
	if pol.RetirementBufferDays > 0 && p.RetirementDate != nil {
		cutoff := dateutil.Day(*p.RetirementDate).AddDate(0, 0, -pol.RetirementBufferDays)
		if end.After(cutoff) {
			return 0, leaveerrors.ErrRetirementWindow
		}
	}

	days := WorkingDays(start, end, pol.WorkingDaysOnly, holidays)
	if days == 0 {
		return 0, leaveerrors.ErrDateRange
	}
	if pol.MinDays > 0 && days < pol.MinDays {
		return days, leaveerrors.ErrMinDays
	}

	// A spell is consecutive calendar days, weekends and holidays included.
	if spell := dateutil.DaysBetween(start, end) + 1; pol.MaxConsecutiveDays > 0 && spell > pol.MaxConsecutiveDays {
		return days, leaveerrors.ErrSpellLimit
	}

	if !pol.NoticeExempt && pol.NoticeDaysRequired > 0 {
		if dateutil.DaysBetween(p.SubmittedOn, start) < pol.NoticeDaysRequired {
			return days, leaveerrors.ErrNoticePeriod
		}
	}

	if !pol.Uncapped && remaining.LessThan(decimal.NewFromInt(int64(days))) {
		return days, balanceerrors.ErrInsufficientBalance.WithDetails(map[string]string{
			"remaining": remaining.String(),
			"requested": decimal.NewFromInt(int64(days)).String(),
		})
	}

	return days, nil
}

// ValidateCertificate is enforced again when the final approver approves.
func ValidateCertificate(pol policy.LeavePolicy, days int, attached bool) error {
	if pol.RequiresCertificate(days) && !attached {
		return leaveerrors.ErrCertificateRequired
	}
	return nil
}
