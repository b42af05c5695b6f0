package holiday

import (
	"time"

	"github.com/google/uuid"
)

const (
	SourceManual = "manual"
	SourceICS    = "ics"
)

type Holiday struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex"`
	Title     string    `gorm:"size:255;not null"`
	Source    string    `gorm:"size:20;not null;default:manual"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
