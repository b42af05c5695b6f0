package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"cdbl-lms/internal/events"
	"cdbl-lms/internal/messaging/kafka"
	kafkaMock "cdbl-lms/internal/messaging/kafka/mock"
	"cdbl-lms/internal/notification"
	notificationMock "cdbl-lms/internal/notification/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestOutboxNotifier_Notify(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)

	event := approvedEvent(events.Recipient{})
	repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, row kafka.OutboxEvent) error {
		assert.Equal(t, events.LeaveLifecycleTopic, row.Topic)
		assert.Equal(t, event.LeaveID, row.AggregateID)
		assert.Equal(t, events.LeaveApproved, row.EventType)

		var got events.LeaveLifecycleEvent
		assert.NoError(t, json.Unmarshal(row.Payload, &got))
		assert.Equal(t, "u-7", got.Recipient.UserID)
		assert.Equal(t, "evt-1", got.EventID)
		assert.False(t, got.OccurredAt.IsZero())
		return nil
	})

	err := notification.NewOutboxNotifier(repo).Notify(ctx, events.Recipient{UserID: "u-7"}, event)

	assert.NoError(t, err)
}

func TestDirectNotifier_Notify(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	deliverer := notificationMock.NewMockDeliverer(ctrl)

	deliverer.EXPECT().Deliver(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e events.LeaveLifecycleEvent) (int64, error) {
			assert.Equal(t, "HR_HEAD", e.Recipient.Role)
			return 1, nil
		})

	err := notification.NewDirectNotifier(deliverer).Notify(ctx, events.Recipient{Role: "HR_HEAD"}, approvedEvent(events.Recipient{}))

	assert.NoError(t, err)
}

func TestNotifyBestEffort(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	notifier := notificationMock.NewMockNotifier(ctrl)

	first := events.Recipient{UserID: "u-1"}
	second := events.Recipient{Role: "HR_ADMIN"}
	notifier.EXPECT().Notify(ctx, first, gomock.Any()).Return(errors.New("outbox down"))
	notifier.EXPECT().Notify(ctx, second, gomock.Any()).Return(nil)

	assert.NotPanics(t, func() {
		notification.NotifyBestEffort(ctx, notifier, zap.NewNop(), approvedEvent(events.Recipient{}), first, second)
	})
	notification.NotifyBestEffort(ctx, nil, zap.NewNop(), approvedEvent(events.Recipient{}), first)
}
