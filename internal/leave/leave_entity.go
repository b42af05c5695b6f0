package leave

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"cdbl-lms/internal/shared/dateutil"
)

const (
	StatusDraft                 = "DRAFT"
	StatusSubmitted             = "SUBMITTED"
	StatusPending               = "PENDING"
	StatusReturned              = "RETURNED"
	StatusCancellationRequested = "CANCELLATION_REQUESTED"
	StatusApproved              = "APPROVED"
	StatusRejected              = "REJECTED"
	StatusCancelled             = "CANCELLED"
	StatusRecalled              = "RECALLED"
)

const (
	DecisionPending  = "PENDING"
	DecisionApproved = "APPROVED"
	DecisionRejected = "REJECTED"
	DecisionReturned = "RETURNED"
	DecisionSkipped  = "SKIPPED"
)

type LeaveRequest struct {
	ID                       uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	ReferenceNo              string         `gorm:"column:reference_no;size:30;not null;uniqueIndex"`
	RequesterID              uuid.UUID      `gorm:"column:requester_id;type:uuid;not null"`
	LeaveType                string         `gorm:"column:leave_type;size:30;not null"`
	StartDate                time.Time      `gorm:"column:start_date;type:date;not null"`
	EndDate                  time.Time      `gorm:"column:end_date;type:date;not null"`
	WorkingDays              int            `gorm:"column:working_days;not null"`
	Reason                   string         `gorm:"column:reason"`
	Status                   string         `gorm:"column:status;size:30;not null"`
	CurrentStage             int            `gorm:"column:current_stage"`
	CertificateAttached      bool           `gorm:"column:certificate_attached"`
	StatusBeforeCancellation *string        `gorm:"column:status_before_cancellation;size:30"`
	SubmittedAt              *time.Time     `gorm:"column:submitted_at"`
	Version                  int            `gorm:"column:version;not null"`
	CreatedAt                time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt                gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// Year is the leave year a request is charged to.
func (l LeaveRequest) Year() int {
	return l.StartDate.Year()
}

func (l LeaveRequest) IsTerminal() bool {
	switch l.Status {
	case StatusApproved, StatusRejected, StatusCancelled, StatusRecalled:
		return true
	}
	return false
}

type ApprovalStep struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	LeaveRequestID uuid.UUID  `gorm:"column:leave_request_id;type:uuid;not null"`
	Sequence       int        `gorm:"column:sequence;not null"`
	ApproverRole   string     `gorm:"column:approver_role;size:30;not null"`
	ApproverID     *uuid.UUID `gorm:"column:approver_id;type:uuid"`
	Decision       string     `gorm:"column:decision;size:20;not null"`
	DecidedBy      *uuid.UUID `gorm:"column:decided_by;type:uuid"`
	DecidedAt      *time.Time `gorm:"column:decided_at"`
	Comment        string     `gorm:"column:comment"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (ApprovalStep) TableName() string {
	return "approval_steps"
}

type LeaveVersion struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	LeaveRequestID uuid.UUID      `gorm:"column:leave_request_id;type:uuid;not null"`
	Version        int            `gorm:"column:version;not null"`
	Action         string         `gorm:"column:action;size:40;not null"`
	ActorID        uuid.UUID      `gorm:"column:actor_id;type:uuid;not null"`
	ActorRole      string         `gorm:"column:actor_role;size:30;not null"`
	Snapshot       datatypes.JSON `gorm:"column:snapshot;type:jsonb;not null"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (LeaveVersion) TableName() string {
	return "leave_versions"
}

// Snapshot holds every mutable field of a LeaveRequest. Applying a
// version's snapshot to the request reproduces it as of that version.
type Snapshot struct {
	ReferenceNo              string  `json:"reference_no"`
	RequesterID              string  `json:"requester_id"`
	LeaveType                string  `json:"leave_type"`
	StartDate                string  `json:"start_date"`
	EndDate                  string  `json:"end_date"`
	WorkingDays              int     `json:"working_days"`
	Reason                   string  `json:"reason"`
	Status                   string  `json:"status"`
	CurrentStage             int     `json:"current_stage"`
	CertificateAttached      bool    `json:"certificate_attached"`
	StatusBeforeCancellation *string `json:"status_before_cancellation,omitempty"`
	Version                  int     `json:"version"`
}

func (l LeaveRequest) Snapshot() Snapshot {
	return Snapshot{
		ReferenceNo:              l.ReferenceNo,
		RequesterID:              l.RequesterID.String(),
		LeaveType:                l.LeaveType,
		StartDate:                dateutil.Format(l.StartDate),
		EndDate:                  dateutil.Format(l.EndDate),
		WorkingDays:              l.WorkingDays,
		Reason:                   l.Reason,
		Status:                   l.Status,
		CurrentStage:             l.CurrentStage,
		CertificateAttached:      l.CertificateAttached,
		StatusBeforeCancellation: l.StatusBeforeCancellation,
		Version:                  l.Version,
	}
}

// Apply writes the snapshot's fields onto l.
func (s Snapshot) Apply(l *LeaveRequest) error {
	start, err := dateutil.Parse(s.StartDate)
	if err != nil {
		return err
	}
	end, err := dateutil.Parse(s.EndDate)
	if err != nil {
		return err
	}
	requester, err := uuid.Parse(s.RequesterID)
	if err != nil {
		return err
	}

	l.ReferenceNo = s.ReferenceNo
	l.RequesterID = requester
	l.LeaveType = s.LeaveType
	l.StartDate = start
	l.EndDate = end
	l.WorkingDays = s.WorkingDays
	l.Reason = s.Reason
	l.Status = s.Status
	l.CurrentStage = s.CurrentStage
	l.CertificateAttached = s.CertificateAttached
	l.StatusBeforeCancellation = s.StatusBeforeCancellation
	l.Version = s.Version
	return nil
}

func (v LeaveVersion) Decode() (Snapshot, error) {
	var s Snapshot
	err := json.Unmarshal(v.Snapshot, &s)
	return s, err
}

func newVersion(l LeaveRequest, action string, actorID uuid.UUID, actorRole string) (*LeaveVersion, error) {
	raw, err := json.Marshal(l.Snapshot())
	if err != nil {
		return nil, err
	}
	return &LeaveVersion{
		ID:             uuid.New(),
		LeaveRequestID: l.ID,
		Version:        l.Version,
		Action:         action,
		ActorID:        actorID,
		ActorRole:      actorRole,
		Snapshot:       datatypes.JSON(raw),
	}, nil
}
