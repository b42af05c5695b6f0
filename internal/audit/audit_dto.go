package audit

import "cdbl-lms/internal/domain"

// Actions written to the audit trail.
const (
	ActionLeaveCreated          = "LEAVE_CREATED"
	ActionLeaveUpdated          = "LEAVE_UPDATED"
	ActionLeaveSubmitted        = "LEAVE_SUBMITTED"
	ActionLeaveForwarded        = "LEAVE_FORWARDED"
	ActionLeaveReturned         = "LEAVE_RETURNED"
	ActionLeaveApproved         = "LEAVE_APPROVED"
	ActionLeaveRejected         = "LEAVE_REJECTED"
	ActionLeaveWithdrawn        = "LEAVE_WITHDRAWN"
	ActionCancellationRequested = "LEAVE_CANCELLATION_REQUESTED"
	ActionCancellationApproved  = "LEAVE_CANCELLATION_APPROVED"
	ActionCancellationRejected  = "LEAVE_CANCELLATION_REJECTED"
	ActionLeaveRecalled         = "LEAVE_RECALLED"
	ActionCertificateAttached   = "LEAVE_CERTIFICATE_ATTACHED"
	ActionBalanceAccrued        = "BALANCE_ACCRUED"
	ActionBalanceLapsed         = "BALANCE_LAPSED"
	ActionBalanceAdjusted       = "BALANCE_ADJUSTED"
	ActionPolicyUpdated         = "POLICY_UPDATED"
	ActionPolicySeeded          = "POLICY_SEEDED"
	ActionHolidayCreated        = "HOLIDAY_CREATED"
	ActionHolidayDeleted        = "HOLIDAY_DELETED"
	ActionHolidaysImported      = "HOLIDAYS_IMPORTED"
	ActionServerStarted         = "SERVER_STARTED"
	ActionServerShutdown        = "SERVER_SHUTDOWN"
)

const (
	TargetLeaveRequest = "leave_request"
	TargetBalance      = "balance"
	TargetPolicy       = "leave_policy"
	TargetHoliday      = "holiday"
	TargetServer       = "server"
)

// Entry is what callers hand to Recorder.Record.
type Entry struct {
	Actor      domain.Actor
	Action     string
	TargetType string
	TargetID   string
	Detail     map[string]any
}

type AuditLogResponse struct {
	ID         string         `json:"id"`
	ActorID    *string        `json:"actor_id,omitempty"`
	ActorRole  string         `json:"actor_role"`
	Action     string         `json:"action"`
	TargetType string         `json:"target_type"`
	TargetID   string         `json:"target_id"`
	Detail     map[string]any `json:"detail,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	CreatedAt  string         `json:"created_at"`
}

type ListAuditQuery struct {
	ActorID    string `form:"actor_id" binding:"omitempty,uuid"`
	Action     string `form:"action"`
	TargetType string `form:"target_type"`
	TargetID   string `form:"target_id"`
	From       string `form:"from"`
	To         string `form:"to"`
}
