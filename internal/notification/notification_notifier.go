package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cdbl-lms/internal/events"
	"cdbl-lms/internal/messaging/kafka"
	"cdbl-lms/internal/shared/contextutil"
)

const aggregateLeaveRequest = "leave_request"

// Notifier is the workflow's outbound sink. Implementations must not
// block on delivery to the end user.
//
//go:generate mockgen -source=notification_notifier.go -destination=mock/notification_notifier_mock.go -package=mock
type Notifier interface {
	Notify(ctx context.Context, recipient events.Recipient, event events.LeaveLifecycleEvent) error
}

type outboxNotifier struct {
	repo kafka.OutboxRepository
}

// NewOutboxNotifier queues events on the outbox for the kafka worker.
func NewOutboxNotifier(repo kafka.OutboxRepository) Notifier {
	return &outboxNotifier{repo: repo}
}

func (n *outboxNotifier) Notify(ctx context.Context, recipient events.Recipient, event events.LeaveLifecycleEvent) error {
	event = stamp(recipient, event)
	row, err := kafka.NewOutboxEvent(
		events.LeaveLifecycleTopic,
		aggregateLeaveRequest,
		event.LeaveID,
		event.EventType,
		contextutil.GetRequestID(ctx),
		event,
	)
	if err != nil {
		return err
	}
	return n.repo.Create(ctx, row)
}

type directNotifier struct {
	deliverer Deliverer
}

// NewDirectNotifier writes inbox rows in-process, for deployments without kafka.
func NewDirectNotifier(deliverer Deliverer) Notifier {
	return &directNotifier{deliverer: deliverer}
}

func (n *directNotifier) Notify(ctx context.Context, recipient events.Recipient, event events.LeaveLifecycleEvent) error {
	_, err := n.deliverer.Deliver(ctx, stamp(recipient, event))
	return err
}

func stamp(recipient events.Recipient, event events.LeaveLifecycleEvent) events.LeaveLifecycleEvent {
	event.Recipient = recipient
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	return event
}

// NotifyBestEffort sends event to every recipient and only logs failures.
func NotifyBestEffort(ctx context.Context, n Notifier, logger *zap.Logger, event events.LeaveLifecycleEvent, recipients ...events.Recipient) {
	if n == nil {
		return
	}
	for _, r := range recipients {
		if err := n.Notify(ctx, r, event); err != nil {
			contextutil.GetLogger(ctx, logger).Warn("notification sink failed",
				zap.String("event_type", event.EventType),
				zap.String("leave_id", event.LeaveID),
				zap.String("recipient", r.Key()),
				zap.Error(err),
			)
		}
	}
}
