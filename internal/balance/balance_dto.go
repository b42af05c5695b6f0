package balance

import (
	"github.com/shopspring/decimal"

	"cdbl-lms/internal/domain"
)

// Operation describes one ledger mutation. IdempotencyKey defaults to
// "<type>:<reference id>" when empty.
type Operation struct {
	UserID         string
	LeaveType      string
	Year           int
	Days           decimal.Decimal
	Type           string
	ReferenceID    string
	IdempotencyKey string
	Note           string
	Actor          domain.Actor
}

// Result is the balance after a mutation. Duplicate is set when the
// idempotency key had already been applied and nothing changed.
type Result struct {
	Balance   Balance
	Applied   decimal.Decimal
	Duplicate bool
}

// LapseResult reports a year-end close. NoBalance is set when the user never
// had a row for the year.
type LapseResult struct {
	Balance        Balance
	Lapsed         decimal.Decimal
	Excess         decimal.Decimal
	CarriedForward decimal.Decimal
	Duplicate      bool
	NoBalance      bool
}

// Changed reports whether the lapse removed anything from the year.
func (r LapseResult) Changed() bool {
	return r.Lapsed.IsPositive() || r.Excess.IsPositive()
}

type AdjustBalanceRequest struct {
	UserID    string          `json:"user_id" binding:"required,uuid"`
	LeaveType string          `json:"leave_type" binding:"required"`
	Year      int             `json:"year" binding:"required,min=2000,max=2100"`
	Days      decimal.Decimal `json:"days"`
	Note      string          `json:"note" binding:"required,max=500"`
}

type BalanceResponse struct {
	UserID          string           `json:"user_id"`
	LeaveType       string           `json:"leave_type"`
	Year            int              `json:"year"`
	Opening         decimal.Decimal  `json:"opening"`
	Accrued         decimal.Decimal  `json:"accrued"`
	Used            decimal.Decimal  `json:"used"`
	Lapsed          decimal.Decimal  `json:"lapsed"`
	Excess          decimal.Decimal  `json:"excess"`
	ClosingOverride *decimal.Decimal `json:"closing_override,omitempty"`
	Remaining       decimal.Decimal  `json:"remaining"`
	Version         int              `json:"version"`
}

type TransactionResponse struct {
	ID             string          `json:"id"`
	LeaveType      string          `json:"leave_type"`
	Year           int             `json:"year"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	IdempotencyKey string          `json:"idempotency_key"`
	ReferenceID    *string         `json:"reference_id,omitempty"`
	Note           string          `json:"note"`
	CreatedAt      string          `json:"created_at"`
}
