package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lawfirm/internal/domain"
)

// ListTestimonials returns testimonials newest first with their lawyer.
func ListTestimonials(tx *gorm.DB) ([]domain.Testimonial, error) {
	testimonials := []domain.Testimonial{}
	err := tx.Preload("Lawyer").Order("id DESC").Find(&testimonials).Error
	return testimonials, translate("list testimonials", err)
}

// GetTestimonial returns the testimonial with its lawyer, or ErrNotFound.
func GetTestimonial(tx *gorm.DB, id uint) (*domain.Testimonial, error) {
	var testimonial domain.Testimonial
	if err := tx.Preload("Lawyer").First(&testimonial, id).Error; err != nil {
		return nil, translate("get testimonial", err)
	}
	return &testimonial, nil
}

// CreateTestimonial inserts testimonial and fills in its id.
func CreateTestimonial(tx *gorm.DB, testimonial *domain.Testimonial) error {
	return translate("create testimonial", tx.Omit(clause.Associations).Create(testimonial).Error)
}

// UpdateTestimonial writes the given columns of an existing testimonial.
func UpdateTestimonial(tx *gorm.DB, testimonial *domain.Testimonial, changes Changes) error {
	return translate("update testimonial", applyChanges(tx.Omit(clause.Associations), testimonial, changes))
}

// DeleteTestimonial removes a testimonial.
func DeleteTestimonial(tx *gorm.DB, testimonial *domain.Testimonial) error {
	return translate("delete testimonial", tx.Delete(&domain.Testimonial{}, testimonial.ID).Error)
}
