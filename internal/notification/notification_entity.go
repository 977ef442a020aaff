package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PersonID uuid.UUID `gorm:"type:uuid;not null;index"`
	Message  string    `gorm:"type:text;not null"`
	IsRead   bool      `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
