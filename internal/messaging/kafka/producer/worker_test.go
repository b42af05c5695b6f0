package producer_test

import (
	"context"
	"errors"
	"testing"

	"cdbl-lms/internal/messaging/kafka"
	kafkaMock "cdbl-lms/internal/messaging/kafka/mock"
	"cdbl-lms/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	WriteFn func(ctx context.Context, msgs ...kafkago.Message) error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	return f.WriteFn(ctx, msgs...)
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		var got []kafkago.Message
		writer := &fakeWriter{WriteFn: func(_ context.Context, msgs ...kafkago.Message) error {
			got = append(got, msgs...)
			return nil
		}}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "e1", AggregateID: "leave-1", EventType: "leave.approved", Topic: "lms.leave.lifecycle.v1", Payload: []byte("{}")},
		}, nil)
		repo.EXPECT().MarkSent(ctx, "e1").Return(nil)

		err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "leave-1", string(got[0].Key))
		assert.Equal(t, "lms.leave.lifecycle.v1", got[0].Topic)
	})

	t.Run("publish failure marks failed and continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		writer := &fakeWriter{WriteFn: func(_ context.Context, msgs ...kafkago.Message) error {
			if string(msgs[0].Key) == "leave-1" {
				return errors.New("broker down")
			}
			return nil
		}}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "e1", AggregateID: "leave-1"},
			{ID: "e2", AggregateID: "leave-2"},
		}, nil)
		repo.EXPECT().MarkFailed(ctx, "e1", "broker down").Return(nil)
		repo.EXPECT().MarkSent(ctx, "e2").Return(nil)

		err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

		err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())

		assert.EqualError(t, err, "db down")
	})
}
