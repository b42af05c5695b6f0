package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cdbl-lms/internal/events"
	notificationerrors "cdbl-lms/internal/notification/errors"
	"cdbl-lms/internal/shared/apperror"
	"cdbl-lms/internal/shared/contextutil"
	"cdbl-lms/internal/user"
)

// Directory expands a role recipient into active user ids.
type Directory interface {
	UserIDsByRole(ctx context.Context, role string) ([]string, error)
}

type userDirectory struct {
	repo user.Repository
}

func NewUserDirectory(repo user.Repository) Directory {
	return &userDirectory{repo: repo}
}

func (d *userDirectory) UserIDsByRole(ctx context.Context, role string) ([]string, error) {
	users, err := d.repo.FindAll(ctx, user.ListFilter{Role: role, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID.String()
	}
	return ids, nil
}

// Deliverer turns a lifecycle event into inbox rows.
type Deliverer interface {
	Deliver(ctx context.Context, event events.LeaveLifecycleEvent) (int64, error)
}

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Deliverer
	List(ctx context.Context, userID string, q ListNotificationQuery) ([]NotificationResponse, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type service struct {
	repo      Repository
	directory Directory
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(repo Repository, directory Directory, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, directory: directory, now: time.Now, logger: l}
}

// Deliver is idempotent per (event, user) through the dedup key, so a
// redelivered kafka message inserts nothing.
func (s *service) Deliver(ctx context.Context, event events.LeaveLifecycleEvent) (int64, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	recipients, err := s.resolve(ctx, event.Recipient)
	if err != nil {
		return 0, err
	}
	if len(recipients) == 0 {
		log.Warn("notification has no recipients",
			zap.String("event_id", event.EventID),
			zap.String("recipient", event.Recipient.Key()),
		)
		return 0, nil
	}

	title, body := render(event)
	var leaveID *uuid.UUID
	if id, err := uuid.Parse(event.LeaveID); err == nil {
		leaveID = &id
	}

	rows := make([]Notification, 0, len(recipients))
	for _, r := range recipients {
		rows = append(rows, Notification{
			ID:             uuid.New(),
			RecipientID:    r,
			EventType:      event.EventType,
			Title:          title,
			Body:           body,
			LeaveRequestID: leaveID,
			DedupKey:       event.EventID + ":" + r.String(),
		})
	}

	n, err := s.repo.InsertIgnoreDuplicates(ctx, rows)
	if err != nil {
		log.Error("insert notifications failed", zap.String("event_id", event.EventID), zap.Error(err))
		return 0, err
	}

	log.Info("notifications delivered",
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.EventType),
		zap.Int64("inserted", n),
	)
	return n, nil
}

func (s *service) resolve(ctx context.Context, r events.Recipient) ([]uuid.UUID, error) {
	var ids []string
	switch {
	case r.UserID != "":
		ids = []string{r.UserID}
	case r.Role != "":
		found, err := s.directory.UserIDsByRole(ctx, r.Role)
		if err != nil {
			return nil, err
		}
		ids = found
	default:
		return nil, notificationerrors.ErrNoRecipients
	}

	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		out = append(out, parsed)
	}
	return out, nil
}

var titleCaser = cases.Title(language.English)

func render(e events.LeaveLifecycleEvent) (string, string) {
	leaveType := titleCaser.String(strings.ToLower(e.LeaveType))
	span := e.StartDate
	if e.EndDate != "" && e.EndDate != e.StartDate {
		span = e.StartDate + " to " + e.EndDate
	}

	var title string
	switch e.EventType {
	case events.LeaveSubmitted, events.LeaveForwarded:
		title = fmt.Sprintf("%s awaiting your review", e.Reference)
	case events.LeaveReturned:
		title = fmt.Sprintf("%s returned for changes", e.Reference)
	case events.LeaveApproved:
		title = fmt.Sprintf("%s approved", e.Reference)
	case events.LeaveRejected:
		title = fmt.Sprintf("%s rejected", e.Reference)
	case events.LeaveCancellationRequested:
		title = fmt.Sprintf("Cancellation requested for %s", e.Reference)
	case events.LeaveCancelled:
		title = fmt.Sprintf("%s cancelled", e.Reference)
	case events.LeaveCancellationRejected:
		title = fmt.Sprintf("Cancellation of %s rejected", e.Reference)
	case events.LeaveRecalled:
		title = fmt.Sprintf("%s recalled", e.Reference)
	case events.LeaveWithdrawn:
		title = fmt.Sprintf("%s withdrawn", e.Reference)
	default:
		title = fmt.Sprintf("%s updated", e.Reference)
	}

	body := fmt.Sprintf("%s leave, %s. Status: %s.", leaveType, span, e.Status)
	if e.Comment != "" {
		body += " Comment: " + e.Comment
	}
	return title, body
}

func (s *service) List(ctx context.Context, userID string, q ListNotificationQuery) ([]NotificationResponse, error) {
	rows, err := s.repo.FindByRecipient(ctx, userID, q.UnreadOnly)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.InvalidField("id")
	}

	n, err := s.repo.MarkRead(ctx, id, userID, s.now())
	if err != nil {
		return err
	}
	if n == 0 {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID, s.now())
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		EventType: n.EventType,
		Title:     n.Title,
		Body:      n.Body,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.LeaveRequestID != nil {
		id := n.LeaveRequestID.String()
		resp.LeaveRequestID = &id
	}
	if n.ReadAt != nil {
		at := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &at
	}
	return resp
}
