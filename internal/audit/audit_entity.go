package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ActorID    *uuid.UUID     `gorm:"column:actor_id;type:uuid"`
	ActorRole  string         `gorm:"column:actor_role"`
	Action     string         `gorm:"column:action"`
	TargetType string         `gorm:"column:target_type"`
	TargetID   string         `gorm:"column:target_id"`
	Detail     datatypes.JSON `gorm:"column:detail;type:jsonb"`
	RequestID  string         `gorm:"column:request_id"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

type ListFilter struct {
	ActorID    string
	Action     string
	TargetType string
	TargetID   string
	From       *time.Time
	To         *time.Time
}
