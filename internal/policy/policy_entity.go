package policy

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"cdbl-lms/internal/domain"
)

// LeavePolicy is the rule set for one leave type. Zero means "unset" for
// MaxConsecutiveDays, CertificateAfterDays and RetirementBufferDays.
type LeavePolicy struct {
	LeaveType            string          `gorm:"column:leave_type;primaryKey" json:"leave_type"`
	MaxConsecutiveDays   int             `gorm:"column:max_consecutive_days" json:"max_consecutive_days"`
	MinDays              int             `gorm:"column:min_days" json:"min_days"`
	NoticeDaysRequired   int             `gorm:"column:notice_days_required" json:"notice_days_required"`
	NoticeExempt         bool            `gorm:"column:notice_exempt" json:"notice_exempt"`
	CarryForwardLimit    decimal.Decimal `gorm:"column:carry_forward_limit;type:numeric(7,2)" json:"carry_forward_limit"`
	AnnualCap            decimal.Decimal `gorm:"column:annual_cap;type:numeric(7,2)" json:"annual_cap"`
	AccrualPerMonth      decimal.Decimal `gorm:"column:accrual_per_month;type:numeric(7,2)" json:"accrual_per_month"`
	Uncapped             bool            `gorm:"column:uncapped" json:"uncapped"`
	WorkingDaysOnly      bool            `gorm:"column:working_days_only" json:"working_days_only"`
	CarryForwardEligible bool            `gorm:"column:carry_forward_eligible" json:"carry_forward_eligible"`
	CertificateAfterDays int             `gorm:"column:certificate_after_days" json:"certificate_after_days"`
	RetirementBufferDays int             `gorm:"column:retirement_buffer_days" json:"retirement_buffer_days"`
	SkipStages           datatypes.JSON  `gorm:"column:skip_stages;type:jsonb" json:"skip_stages"`
	RecallCreditsBalance bool            `gorm:"column:recall_credits_balance" json:"recall_credits_balance"`
	CountsAsDuty         bool            `gorm:"column:counts_as_duty" json:"counts_as_duty"`
	UpdatedBy            *uuid.UUID      `gorm:"column:updated_by;type:uuid" json:"updated_by,omitempty"`
	CreatedAt            time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LeavePolicy) TableName() string {
	return "leave_policies"
}

func (p LeavePolicy) SkipRoles() []domain.Role {
	var roles []domain.Role
	if len(p.SkipStages) == 0 {
		return roles
	}
	_ = json.Unmarshal(p.SkipStages, &roles)
	return roles
}

func (p LeavePolicy) Skips(role domain.Role) bool {
	for _, r := range p.SkipRoles() {
		if r == role {
			return true
		}
	}
	return false
}

func (p LeavePolicy) RequiresCertificate(days int) bool {
	return p.CertificateAfterDays > 0 && days > p.CertificateAfterDays
}

func skipStagesJSON(roles ...domain.Role) datatypes.JSON {
	if roles == nil {
		roles = []domain.Role{}
	}
	raw, _ := json.Marshal(roles)
	return datatypes.JSON(raw)
}
