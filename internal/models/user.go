package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the administrator account stored in the database.
type User struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"` // UUID primary key.

	Username string `gorm:"type:text;not null;uniqueIndex" json:"username"` // Unique login name.
	Password string `gorm:"type:text;not null" json:"-"`                    // Bcrypt password hash, never serialized.

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"` // Creation timestamp.
}

// TableName specifies the table name for User.
func (User) TableName() string { return "users" }

// BeforeCreate assigns a UUID so ids are generated app-side on every dialect.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
