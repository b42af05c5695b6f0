package kafka_test

import (
	"context"
	"regexp"
	"testing"

	"cdbl-lms/internal/events"
	"cdbl-lms/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNewOutboxEvent(t *testing.T) {
	ev, err := kafka.NewOutboxEvent(events.LeaveLifecycleTopic, "leave_request", "b1f0", events.LeaveApproved, "req-1",
		events.LeaveLifecycleEvent{EventType: events.LeaveApproved, LeaveID: "b1f0"})

	assert.NoError(t, err)
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, kafka.OutboxStatusPending, ev.Status)
	assert.Contains(t, string(ev.Payload), `"event_type":"leave.approved"`)
	assert.NoError(t, kafka.ValidateOutboxEvent(ev))
}

func TestValidateOutboxEvent(t *testing.T) {
	base := kafka.OutboxEvent{ID: "1", Topic: "t", Payload: []byte("{}"), Status: kafka.OutboxStatusPending}

	missingTopic := base
	missingTopic.Topic = ""
	assert.EqualError(t, kafka.ValidateOutboxEvent(missingTopic), "outbox topic is required")

	badStatus := base
	badStatus.Status = "queued"
	assert.EqualError(t, kafka.ValidateOutboxEvent(badStatus), "invalid outbox status: queued")
}

func TestOutboxRepository_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)
	ev := kafka.OutboxEvent{
		ID: "e1", RequestID: "r1", AggregateType: "leave_request", AggregateID: "a1",
		EventType: events.LeaveSubmitted, Topic: events.LeaveLifecycleTopic, Payload: []byte("{}"), Status: kafka.OutboxStatusPending,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs("e1", "r1", "leave_request", "a1", events.LeaveSubmitted, events.LeaveLifecycleTopic, []byte("{}"), kafka.OutboxStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), ev)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("e1", kafka.OutboxStatusFailed, "broker down", kafka.MaxRetries, kafka.OutboxStatusDead).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkFailed(context.Background(), "e1", "broker down")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
