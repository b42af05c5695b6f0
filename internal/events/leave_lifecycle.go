package events

import "time"

const LeaveLifecycleTopic = "lms.leave.lifecycle.v1"

const (
	LeaveSubmitted             = "leave.submitted"
	LeaveForwarded             = "leave.forwarded"
	LeaveReturned              = "leave.returned"
	LeaveApproved              = "leave.approved"
	LeaveRejected              = "leave.rejected"
	LeaveWithdrawn             = "leave.withdrawn"
	LeaveCancellationRequested = "leave.cancellation_requested"
	LeaveCancelled             = "leave.cancelled"
	LeaveCancellationRejected  = "leave.cancellation_rejected"
	LeaveRecalled              = "leave.recalled"
)

// Recipient is a single user, or every active user holding Role when
// UserID is empty.
type Recipient struct {
	UserID string `json:"user_id,omitempty"`
	Role   string `json:"role,omitempty"`
}

func (r Recipient) Key() string {
	if r.UserID != "" {
		return r.UserID
	}
	return "role:" + r.Role
}

type LeaveLifecycleEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	LeaveID     string    `json:"leave_id"`
	Reference   string    `json:"reference"`
	RequesterID string    `json:"requester_id"`
	LeaveType   string    `json:"leave_type"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Status      string    `json:"status"`
	ActorID     string    `json:"actor_id,omitempty"`
	ActorRole   string    `json:"actor_role"`
	Comment     string    `json:"comment,omitempty"`
	Recipient   Recipient `json:"recipient"`
	OccurredAt  time.Time `json:"occurred_at"`
}
