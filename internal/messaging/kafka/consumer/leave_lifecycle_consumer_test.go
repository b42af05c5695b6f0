package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"cdbl-lms/internal/events"
	"cdbl-lms/internal/messaging/kafka/consumer"
	notificationMock "cdbl-lms/internal/notification/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// fakeReader serves msgs in order, then cancels the consumer.
type fakeReader struct {
	msgs      []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(f.msgs) == 0 {
		f.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := f.msgs[0]
	f.msgs = f.msgs[1:]
	return msg, nil
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	f.committed = append(f.committed, msgs...)
	return nil
}

func message(t *testing.T, e events.LeaveLifecycleEvent, offset int64) kafkago.Message {
	raw, err := json.Marshal(e)
	assert.NoError(t, err)
	return kafkago.Message{Value: raw, Offset: offset}
}

func TestConsumeLeaveLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	deliverer := notificationMock.NewMockDeliverer(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ok := events.LeaveLifecycleEvent{EventID: "e1", EventType: events.LeaveApproved, Recipient: events.Recipient{UserID: "u1"}}
	failing := events.LeaveLifecycleEvent{EventID: "e2", EventType: events.LeaveRejected, Recipient: events.Recipient{UserID: "u2"}}

	reader := &fakeReader{
		msgs: []kafkago.Message{
			message(t, ok, 1),
			{Value: []byte("not json"), Offset: 2},
			message(t, failing, 3),
		},
		cancel: cancel,
	}

	deliverer.EXPECT().Deliver(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e events.LeaveLifecycleEvent) (int64, error) {
			if e.EventID == "e2" {
				return 0, errors.New("db down")
			}
			return 1, nil
		}).Times(2)

	consumer.ConsumeLeaveLifecycle(ctx, reader, deliverer, zap.NewNop())

	offsets := make([]int64, len(reader.committed))
	for i, m := range reader.committed {
		offsets[i] = m.Offset
	}
	assert.Equal(t, []int64{1, 2}, offsets)
}
