package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User maps the same users table the auth package reads; this package
// owns the administrative writes.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string     `gorm:"column:username;type:varchar(80);uniqueIndex;not null"`
	Email        string     `gorm:"column:email;type:varchar(120);uniqueIndex;not null"`
	PasswordHash string     `gorm:"column:password_hash;type:varchar(255);not null"`
	Role         string     `gorm:"column:role;type:varchar(20);not null;default:staff"`
	PersonID     *uuid.UUID `gorm:"column:person_id;type:uuid;uniqueIndex"`
	IsActive     bool       `gorm:"column:is_active;default:true"`
	LastLogin    *time.Time `gorm:"column:last_login"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}
