package holiday

import (
	"time"

	"github.com/google/uuid"
)

type Holiday struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date     time.Time `gorm:"type:date;uniqueIndex;not null"`
	Name     string    `gorm:"type:varchar(100);not null"`
	IsPublic bool      `gorm:"default:true"`
	Country  string    `gorm:"type:varchar(10);default:'TR'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
