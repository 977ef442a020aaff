package leave

import (
	"time"

	"github.com/google/uuid"
)

type LeaveRequest struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_person_dates"`

	LeaveType string    `gorm:"type:varchar(30);not null;default:'ANNUAL'"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_person_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_person_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	Status    string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null"`
	DecidedBy *uuid.UUID `gorm:"type:uuid"`
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
