package balance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction types in the append-only ledger.
const (
	TxDebit        = "DEBIT"
	TxReversal     = "REVERSAL"
	TxAccrual      = "ACCRUAL"
	TxLapse        = "LAPSE"
	TxCarryForward = "CARRY_FORWARD"
	TxAdjustment   = "ADJUSTMENT"
)

// Balance is keyed by (user, leave type, year). Version is bumped by every
// compare-and-swap update.
type Balance struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID           `gorm:"type:uuid;not null" json:"user_id"`
	LeaveType       string              `gorm:"size:30;not null" json:"leave_type"`
	Year            int                 `gorm:"not null" json:"year"`
	Opening         decimal.Decimal     `gorm:"type:numeric(7,2)" json:"opening"`
	Accrued         decimal.Decimal     `gorm:"type:numeric(7,2)" json:"accrued"`
	Used            decimal.Decimal     `gorm:"type:numeric(7,2)" json:"used"`
	Lapsed          decimal.Decimal     `gorm:"type:numeric(7,2)" json:"lapsed"`
	Excess          decimal.Decimal     `gorm:"type:numeric(7,2)" json:"excess"`
	ClosingOverride decimal.NullDecimal `gorm:"type:numeric(7,2)" json:"closing_override"`
	Version         int                 `gorm:"not null;default:1" json:"version"`
	CreatedAt       time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Balance) TableName() string {
	return "leave_balances"
}

// Remaining is the override when one is set, else opening + accrued - used.
func (b Balance) Remaining() decimal.Decimal {
	if b.ClosingOverride.Valid {
		return b.ClosingOverride.Decimal
	}
	return b.Opening.Add(b.Accrued).Sub(b.Used)
}

type Transaction struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BalanceID      uuid.UUID       `gorm:"type:uuid;not null"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null"`
	LeaveType      string          `gorm:"size:30;not null"`
	Year           int             `gorm:"not null"`
	Type           string          `gorm:"size:20;not null"`
	Amount         decimal.Decimal `gorm:"type:numeric(7,2)"`
	IdempotencyKey string          `gorm:"size:120;not null;uniqueIndex"`
	ReferenceID    *string         `gorm:"size:64"`
	Note           string
	CreatedBy      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
}

func (Transaction) TableName() string {
	return "balance_transactions"
}
