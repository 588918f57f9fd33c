package domain

import (
	"time"

	"gorm.io/gorm"
)

// ContactMessage represents a contact form submission. Rows are never
// updated or deleted through the API.
type ContactMessage struct {
	ID                     uint      `gorm:"primaryKey" json:"id"`
	FullName               string    `gorm:"size:255;not null" json:"full_name"`
	Email                  string    `gorm:"size:255;not null;index" json:"email"`
	Phone                  *string   `gorm:"size:50" json:"phone"`
	PreferredContactMethod *string   `gorm:"size:50" json:"preferred_contact_method"`
	Message                string    `gorm:"type:text;not null" json:"message"`
	CreatedAt              time.Time `gorm:"not null;index" json:"created_at"`
}

// TableName specifies the table name for ContactMessage
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// BeforeCreate hook
func (c *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return nil
}
