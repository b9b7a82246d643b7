package models

import "time"

// Session maps an opaque session id to the authenticated user. Rows are
// deleted on logout so a replayed cookie cannot resurrect a session.
type Session struct {
	ID     string `gorm:"type:varchar(64);primaryKey"` // Opaque random session id.
	UserID string `gorm:"type:varchar(36);not null;index"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt time.Time `gorm:"not null;index"` // Sessions past this instant are invalid.
}

// TableName specifies the table name for Session.
func (Session) TableName() string { return "sessions" }
