package repository

import (
	"gorm.io/gorm"

	"lawfirm/internal/domain"
)

// ListContactMessages returns messages newest first.
func ListContactMessages(tx *gorm.DB) ([]domain.ContactMessage, error) {
	messages := []domain.ContactMessage{}
	err := tx.Order("created_at DESC").Order("id DESC").Find(&messages).Error
	return messages, translate("list contact messages", err)
}

// CreateContactMessage appends a message. There is no update or delete.
func CreateContactMessage(tx *gorm.DB, message *domain.ContactMessage) error {
	return translate("create contact message", tx.Create(message).Error)
}
