package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrStaleRequest is returned by UpdateWithCAS when the row no longer has
// the expected status and version.
var ErrStaleRequest = errors.New("leave request changed concurrently")

type ListFilter struct {
	RequesterID  string
	DepartmentID string
	Status       string
	LeaveType    string
	From         *time.Time
	To           *time.Time
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, error)
	UpdateWithCAS(ctx context.Context, l *LeaveRequest, expectedStatus string, expectedVersion int) error
	ReplaceSteps(ctx context.Context, leaveID string, steps []ApprovalStep) error
	FindSteps(ctx context.Context, leaveID string) ([]ApprovalStep, error)
	UpdateStep(ctx context.Context, step *ApprovalStep, expectedDecision string) error
	CreateVersion(ctx context.Context, v *LeaveVersion) error
	FindVersions(ctx context.Context, leaveID string) ([]LeaveVersion, error)
	FindPendingFor(ctx context.Context, role, approverID string) ([]LeaveRequest, error)
	HasOverlap(ctx context.Context, requesterID string, startDate, endDate time.Time, excludeID *string) (bool, error)
	FindApprovedOverlapping(ctx context.Context, requesterID string, from, to time.Time) ([]LeaveRequest, error)
	CountByStatus(ctx context.Context, year int) (map[string]int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, error) {
	db := r.conn(ctx).Model(&LeaveRequest{})

	if filter.RequesterID != "" {
		db = db.Where("requester_id = ?", filter.RequesterID)
	}
	if filter.DepartmentID != "" {
		db = db.Where("requester_id IN (?)",
			r.db.Table("users").Select("id").Where("department_id = ?", filter.DepartmentID),
		)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.LeaveType != "" {
		db = db.Where("leave_type = ?", filter.LeaveType)
	}
	if filter.From != nil {
		db = db.Where("end_date >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where("start_date <= ?", *filter.To)
	}

	var leaves []LeaveRequest
	err := db.Order("start_date DESC, created_at DESC").Find(&leaves).Error
	return leaves, err
}

// UpdateWithCAS writes l only if the stored row still has expectedStatus
// and expectedVersion. l.Version must already hold the new version.
func (r *repository) UpdateWithCAS(ctx context.Context, l *LeaveRequest, expectedStatus string, expectedVersion int) error {
	res := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", l.ID).
		Where("status = ?", expectedStatus).
		Where("version = ?", expectedVersion).
		Updates(map[string]any{
			"leave_type":                 l.LeaveType,
			"start_date":                 l.StartDate,
			"end_date":                   l.EndDate,
			"working_days":               l.WorkingDays,
			"reason":                     l.Reason,
			"status":                     l.Status,
			"current_stage":              l.CurrentStage,
			"certificate_attached":       l.CertificateAttached,
			"status_before_cancellation": l.StatusBeforeCancellation,
			"submitted_at":               l.SubmittedAt,
			"version":                    l.Version,
			"updated_at":                 time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleRequest
	}
	return nil
}

func (r *repository) ReplaceSteps(ctx context.Context, leaveID string, steps []ApprovalStep) error {
	db := r.conn(ctx)
	if err := db.Where("leave_request_id = ?", leaveID).Delete(&ApprovalStep{}).Error; err != nil {
		return err
	}
	if len(steps) == 0 {
		return nil
	}
	return db.Create(&steps).Error
}

func (r *repository) FindSteps(ctx context.Context, leaveID string) ([]ApprovalStep, error) {
	var steps []ApprovalStep
	err := r.conn(ctx).
		Where("leave_request_id = ?", leaveID).
		Order("sequence ASC").
		Find(&steps).Error
	return steps, err
}

// UpdateStep records a decision only while the step still has
// expectedDecision, so one step can be decided once.
func (r *repository) UpdateStep(ctx context.Context, step *ApprovalStep, expectedDecision string) error {
	res := r.conn(ctx).
		Model(&ApprovalStep{}).
		Where("id = ?", step.ID).
		Where("decision = ?", expectedDecision).
		Updates(map[string]any{
			"decision":   step.Decision,
			"decided_by": step.DecidedBy,
			"decided_at": step.DecidedAt,
			"comment":    step.Comment,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleRequest
	}
	return nil
}

func (r *repository) CreateVersion(ctx context.Context, v *LeaveVersion) error {
	return r.conn(ctx).Create(v).Error
}

func (r *repository) FindVersions(ctx context.Context, leaveID string) ([]LeaveVersion, error) {
	var versions []LeaveVersion
	err := r.conn(ctx).
		Where("leave_request_id = ?", leaveID).
		Order("version ASC").
		Find(&versions).Error
	return versions, err
}

// FindPendingFor returns requests whose current step waits on role and is
// either unassigned or assigned to approverID.
func (r *repository) FindPendingFor(ctx context.Context, role, approverID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.conn(ctx).
		Table("leave_requests AS l").
		Select("l.*").
		Joins("JOIN approval_steps s ON s.leave_request_id = l.id AND s.sequence = l.current_stage").
		Where("l.deleted_at IS NULL").
		Where("l.status IN ?", []string{StatusSubmitted, StatusPending}).
		Where("s.decision = ?", DecisionPending).
		Where("s.approver_role = ?", role).
		Where("(s.approver_id IS NULL OR s.approver_id = ?)", approverID).
		Order("l.submitted_at ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) HasOverlap(ctx context.Context, requesterID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("requester_id = ?", requesterID).
		Where("status NOT IN ?", []string{StatusDraft, StatusRejected, StatusCancelled, StatusRecalled}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) FindApprovedOverlapping(ctx context.Context, requesterID string, from, to time.Time) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.conn(ctx).
		Where("requester_id = ?", requesterID).
		Where("status = ?", StatusApproved).
		Where("NOT (end_date < ? OR start_date > ?)", from, to).
		Find(&leaves).Error
	return leaves, err
}

type statusCount struct {
	Status string
	Total  int64
}

func (r *repository) CountByStatus(ctx context.Context, year int) (map[string]int64, error) {
	var rows []statusCount
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Select("status, COUNT(*) AS total").
		Where("EXTRACT(YEAR FROM start_date) = ?", year).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
