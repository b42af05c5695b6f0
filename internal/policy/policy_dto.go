package policy

// UpdatePolicyRequest is a partial update; nil fields keep their value.
type UpdatePolicyRequest struct {
	MaxConsecutiveDays   *int     `json:"max_consecutive_days"`
	MinDays              *int     `json:"min_days"`
	NoticeDaysRequired   *int     `json:"notice_days_required"`
	NoticeExempt         *bool    `json:"notice_exempt"`
	CarryForwardLimit    *float64 `json:"carry_forward_limit"`
	AnnualCap            *float64 `json:"annual_cap"`
	AccrualPerMonth      *float64 `json:"accrual_per_month"`
	Uncapped             *bool    `json:"uncapped"`
	WorkingDaysOnly      *bool    `json:"working_days_only"`
	CarryForwardEligible *bool    `json:"carry_forward_eligible"`
	CertificateAfterDays *int     `json:"certificate_after_days"`
	RetirementBufferDays *int     `json:"retirement_buffer_days"`
	SkipStages           []string `json:"skip_stages"`
	RecallCreditsBalance *bool    `json:"recall_credits_balance"`
	CountsAsDuty         *bool    `json:"counts_as_duty"`
}

type PolicyResponse struct {
	LeaveType            string   `json:"leave_type"`
	MaxConsecutiveDays   int      `json:"max_consecutive_days"`
	MinDays              int      `json:"min_days"`
	NoticeDaysRequired   int      `json:"notice_days_required"`
	NoticeExempt         bool     `json:"notice_exempt"`
	CarryForwardLimit    float64  `json:"carry_forward_limit"`
	AnnualCap            float64  `json:"annual_cap"`
	AccrualPerMonth      float64  `json:"accrual_per_month"`
	Uncapped             bool     `json:"uncapped"`
	WorkingDaysOnly      bool     `json:"working_days_only"`
	CarryForwardEligible bool     `json:"carry_forward_eligible"`
	CertificateAfterDays int      `json:"certificate_after_days"`
	RetirementBufferDays int      `json:"retirement_buffer_days"`
	SkipStages           []string `json:"skip_stages"`
	RecallCreditsBalance bool     `json:"recall_credits_balance"`
	CountsAsDuty         bool     `json:"counts_as_duty"`
	UpdatedAt            string   `json:"updated_at"`
}
