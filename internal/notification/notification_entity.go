package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	RecipientID    uuid.UUID  `gorm:"column:recipient_id;type:uuid;not null"`
	EventType      string     `gorm:"column:event_type;size:60;not null"`
	Title          string     `gorm:"column:title;size:255;not null"`
	Body           string     `gorm:"column:body"`
	LeaveRequestID *uuid.UUID `gorm:"column:leave_request_id;type:uuid"`
	DedupKey       string     `gorm:"column:dedup_key;size:120;not null;uniqueIndex"`
	IsRead         bool       `gorm:"column:is_read"`
	ReadAt         *time.Time `gorm:"column:read_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}
