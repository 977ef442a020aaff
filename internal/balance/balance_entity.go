package balance

import (
	"time"

	"github.com/google/uuid"
)

// LeaveBalance is one person's ledger row for one calendar year. It is
// administered explicitly and is not recomputed from approved requests.
type LeaveBalance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PersonID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_balances_person_year"`
	Year        int       `gorm:"not null;uniqueIndex:idx_balances_person_year"`
	Entitlement int       `gorm:"not null"`
	Used        int       `gorm:"not null;default:0"`
	Pending     int       `gorm:"not null;default:0"`
	Carryover   int       `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b LeaveBalance) Remaining() int {
	return b.Entitlement + b.Carryover - b.Used - b.Pending
}
