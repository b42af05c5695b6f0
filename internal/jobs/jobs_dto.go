package jobs

import (
	"time"

	"github.com/shopspring/decimal"

	"cdbl-lms/internal/shared/dateutil"
)

const (
	JobMonthlyAccrual = "monthly_accrual"
	JobAnnualLapse    = "annual_lapse"
)

const (
	OutcomeAccrued        = "ACCRUED"
	OutcomeLapsed         = "LAPSED"
	OutcomeCarriedForward = "CARRIED_FORWARD"
	OutcomeSkipped        = "SKIPPED"
	OutcomeFailed         = "FAILED"
)

// UserResult is the outcome for one user and leave type within a run.
type UserResult struct {
	UserID         string          `json:"user_id"`
	LeaveType      string          `json:"leave_type"`
	Outcome        string          `json:"outcome"`
	DutyDays       int             `json:"duty_days,omitempty"`
	Days           decimal.Decimal `json:"days"`
	CarriedForward decimal.Decimal `json:"carried_forward"`
	Reason         string          `json:"reason,omitempty"`
}

type Counts struct {
	Processed int `json:"processed"`
	Applied   int `json:"applied"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

type RunResult struct {
	Job        string       `json:"job"`
	Period     string       `json:"period"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Counts     Counts       `json:"counts"`
	Results    []UserResult `json:"results"`
}

type RunJobRequest struct {
	AsOf string `json:"as_of" form:"as_of"`
}

func countResults(results []UserResult) Counts {
	c := Counts{Processed: len(results)}
	for _, r := range results {
		switch r.Outcome {
		case OutcomeFailed:
			c.Failed++
		case OutcomeSkipped:
			c.Skipped++
		default:
			c.Applied++
		}
	}
	return c
}

// DefaultAsOf is the date a run covers when the caller gives none: the
// month or year that has just closed.
func DefaultAsOf(job string, now time.Time) time.Time {
	if job == JobAnnualLapse {
		return time.Date(now.Year()-1, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	return dateutil.MonthStart(now).AddDate(0, 0, -1)
}
