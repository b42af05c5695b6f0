package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"cdbl-lms/internal/events"
	"cdbl-lms/internal/notification"
)

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeLeaveLifecycle turns lifecycle events into inbox notifications
// until ctx is cancelled. A message is committed only after delivery, or
// when it cannot be decoded.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader MessageReader,
	deliverer notification.Deliverer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		handleMessage(ctx, reader, deliverer, log, msg)
	}
}

func handleMessage(
	ctx context.Context,
	reader MessageReader,
	deliverer notification.Deliverer,
	log *zap.Logger,
	msg kafkago.Message,
) {
	var event events.LeaveLifecycleEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode leave lifecycle event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	n, err := deliverer.Deliver(ctx, event)
	if err != nil {
		log.Error("deliver notification failed",
			zap.String("event_id", event.EventID),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
		return
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit leave lifecycle message failed", zap.Error(err))
		return
	}

	log.Info("leave lifecycle event delivered",
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.EventType),
		zap.Int64("notifications", n),
	)
}
