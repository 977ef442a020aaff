package person

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Person struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName string     `gorm:"type:varchar(100);not null"`
	Email    string     `gorm:"type:varchar(120);uniqueIndex;not null"`
	Role     string     `gorm:"type:varchar(50);not null"`
	TeamID   *uuid.UUID `gorm:"type:uuid;index"`
	HireDate time.Time  `gorm:"type:date;not null"`
	IsActive bool       `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Entitlement returns the annual leave days for the person's tenure at
// asOf. Tenure is whole 365-day blocks since the hire date; no calendar
// leap adjustment, matching how balances have always been computed here.
func (p Person) Entitlement(asOf time.Time) int {
	days := int(asOf.Sub(p.HireDate).Hours() / 24)
	years := days / 365

	switch {
	case years < 1:
		return 14
	case years < 5:
		return 20
	default:
		return 26
	}
}
