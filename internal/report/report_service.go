package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cdbl-lms/internal/department"
	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/leave"
	leaveerrors "cdbl-lms/internal/leave/errors"
	reporterrors "cdbl-lms/internal/report/errors"
	"cdbl-lms/internal/shared/apperror"
	"cdbl-lms/internal/shared/contextutil"
	"cdbl-lms/internal/shared/dateutil"
	"cdbl-lms/internal/user"
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Dashboard(ctx context.Context, actor domain.Actor, year int) (DashboardResponse, error)
	ExportLeaves(ctx context.Context, actor domain.Actor, q ExportQuery) (File, error)
	LeaveLetter(ctx context.Context, actor domain.Actor, leaveID string) (File, error)
}

type service struct {
	leaves      leave.Repository
	users       user.Repository
	departments department.Repository
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(leaves leave.Repository, users user.Repository, departments department.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		leaves:      leaves,
		users:       users,
		departments: departments,
		now:         time.Now,
		logger:      l,
	}
}

func (s *service) Dashboard(ctx context.Context, actor domain.Actor, year int) (DashboardResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if !domain.Can(actor.Role, domain.ResourceReport, domain.ActionRead) {
		return DashboardResponse{}, apperror.ErrForbidden
	}

	today := dateutil.Day(s.now())
	if year == 0 {
		year = today.Year()
	}

	counts, err := s.leaves.CountByStatus(ctx, year)
	if err != nil {
		log.Error("dashboard count by status failed", zap.Int("year", year), zap.Error(err))
		return DashboardResponse{}, err
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	approved, err := s.leaves.FindAll(ctx, leave.ListFilter{Status: leave.StatusApproved, From: &from, To: &to})
	if err != nil {
		log.Error("dashboard approved leaves failed", zap.Int("year", year), zap.Error(err))
		return DashboardResponse{}, err
	}

	resp := DashboardResponse{
		Year:             year,
		ByStatus:         counts,
		ApprovedDays:     make(map[string]int),
		PendingApprovals: counts[leave.StatusSubmitted] + counts[leave.StatusPending],
	}
	for _, l := range approved {
		resp.ApprovedDays[l.LeaveType] += l.WorkingDays
		if !today.Before(dateutil.Day(l.StartDate)) && !today.After(dateutil.Day(l.EndDate)) {
			resp.OnLeaveToday++
		}
	}
	return resp, nil
}

func (s *service) ExportLeaves(ctx context.Context, actor domain.Actor, q ExportQuery) (File, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if !domain.Can(actor.Role, domain.ResourceReport, domain.ActionRead) {
		return File{}, apperror.ErrForbidden
	}

	filter := leave.ListFilter{Status: q.Status, LeaveType: q.LeaveType, DepartmentID: q.DepartmentID}
	from, err := dateutil.ParseOptional(&q.From)
	if err != nil {
		return File{}, reporterrors.ErrInvalidDate
	}
	to, err := dateutil.ParseOptional(&q.To)
	if err != nil {
		return File{}, reporterrors.ErrInvalidDate
	}
	filter.From, filter.To = from, to

	leaves, err := s.leaves.FindAll(ctx, filter)
	if err != nil {
		log.Error("export find leaves failed", zap.Error(err))
		return File{}, err
	}
	users, err := s.users.FindAll(ctx, user.ListFilter{})
	if err != nil {
		return File{}, err
	}
	depts, err := s.departments.FindAll(ctx)
	if err != nil {
		return File{}, err
	}

	byUser := make(map[uuid.UUID]user.User, len(users))
	for _, u := range users {
		byUser[u.ID] = u
	}
	deptNames := make(map[uuid.UUID]string, len(depts))
	for _, d := range depts {
		deptNames[d.ID] = d.Name
	}

	rows := make([]leaveRow, 0, len(leaves))
	for _, l := range leaves {
		row := leaveRow{
			Reference:   l.ReferenceNo,
			LeaveType:   l.LeaveType,
			Start:       dateutil.Format(l.StartDate),
			End:         dateutil.Format(l.EndDate),
			WorkingDays: l.WorkingDays,
			Status:      l.Status,
		}
		if u, ok := byUser[l.RequesterID]; ok {
			row.Employee = u.FullName
			row.Email = u.Email
			if u.DepartmentID != nil {
				row.Department = deptNames[*u.DepartmentID]
			}
		}
		if l.SubmittedAt != nil {
			row.SubmittedAt = l.SubmittedAt.UTC().Format("2006-01-02 15:04")
		}
		rows = append(rows, row)
	}

	period := "all dates"
	name := "leave-report"
	if from != nil || to != nil {
		period = fmt.Sprintf("%s to %s", orDash(from), orDash(to))
		name = fmt.Sprintf("leave-report_%s_%s", orDash(from), orDash(to))
	}
	buf, err := buildLeaveWorkbook("Leave report, "+period, rows)
	if err != nil {
		log.Error("export write workbook failed", zap.Error(err))
		return File{}, reporterrors.ErrExportFailed
	}

	log.Info("leave report exported", zap.Int("rows", len(rows)))
	return File{Name: name + ".xlsx", ContentType: ContentTypeXLSX, Data: buf.Bytes()}, nil
}

// LeaveLetter renders the approval letter for an approved request. The
// requester may always download their own; others need report:read.
func (s *service) LeaveLetter(ctx context.Context, actor domain.Actor, leaveID string) (File, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(zap.String("leave_id", leaveID))

	if _, err := uuid.Parse(leaveID); err != nil {
		return File{}, leaveerrors.ErrInvalidLeaveID
	}
	l, err := s.leaves.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return File{}, leaveerrors.ErrLeaveNotFound
		}
		return File{}, err
	}
	if l.RequesterID.String() != actor.ID && !domain.Can(actor.Role, domain.ResourceReport, domain.ActionRead) {
		return File{}, apperror.ErrForbidden
	}
	if l.Status != leave.StatusApproved {
		return File{}, reporterrors.ErrLetterNotAvailable
	}

	requester, err := s.users.FindByID(ctx, l.RequesterID.String())
	if err != nil {
		return File{}, err
	}
	steps, err := s.leaves.FindSteps(ctx, leaveID)
	if err != nil {
		return File{}, err
	}

	deptName := "-"
	if requester.DepartmentID != nil {
		if d, err := s.departments.FindByID(ctx, requester.DepartmentID.String()); err == nil {
			deptName = d.Name
		}
	}

	lines := []string{
		"Reference: " + l.ReferenceNo,
		"Issued: " + dateutil.Format(s.now()),
		"",
		fmt.Sprintf("Employee: %s <%s>", requester.FullName, requester.Email),
		"Department: " + deptName,
		"Leave type: " + strings.ToLower(l.LeaveType),
		fmt.Sprintf("Period: %s to %s (%d days)", dateutil.Format(l.StartDate), dateutil.Format(l.EndDate), l.WorkingDays),
	}
	if l.Reason != "" {
		lines = append(lines, "Reason: "+l.Reason)
	}
	lines = append(lines, "", "Approval trail:")
	for _, st := range steps {
		if st.Decision != leave.DecisionApproved {
			continue
		}
		by := "-"
		if st.DecidedBy != nil {
			if u, err := s.users.FindByID(ctx, st.DecidedBy.String()); err == nil {
				by = u.FullName
			}
		}
		at := ""
		if st.DecidedAt != nil {
			at = dateutil.Format(*st.DecidedAt)
		}
		lines = append(lines, fmt.Sprintf("  %d. %s  %s  %s", st.Sequence+1, st.ApproverRole, by, at))
	}
	lines = append(lines, "", "This letter confirms the leave above has been approved.")

	log.Info("leave letter generated", zap.String("reference_no", l.ReferenceNo))
	return File{
		Name:        "leave-letter_" + l.ReferenceNo + ".pdf",
		ContentType: ContentTypePDF,
		Data:        buildLetterPDF("Leave Approval Letter", lines),
	}, nil
}

func orDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return dateutil.Format(*t)
}
