package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inquiry represents one prospective-client form submission tied to a
// specific landing page.
type Inquiry struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"` // UUID primary key.

	Name     string `gorm:"type:text;not null" json:"name"`           // Submitter name.
	Phone    string `gorm:"type:text;not null" json:"phone"`          // Contact phone number.
	Email    string `gorm:"type:text;not null" json:"email"`          // Contact email address.
	Country  string `gorm:"type:text;not null" json:"country"`        // Submitter country.
	Message  string `gorm:"type:text;not null" json:"message"`        // Free-text message.
	Platform string `gorm:"type:text;not null;index" json:"platform"` // Landing page tag the submission came from.

	IPAddress string  `gorm:"type:text;not null;index" json:"ipAddress"` // Submitting IP, recorded once at creation.
	Remarks   *string `gorm:"type:text" json:"remarks"`                  // Admin-entered notes, nil until set.

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"createdAt"` // Server-assigned, immutable.
}

// TableName specifies the table name for Inquiry.
func (Inquiry) TableName() string { return "inquiries" }

// BeforeCreate assigns a UUID so ids are generated app-side on every dialect.
func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
