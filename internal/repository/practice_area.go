package repository

import (
	"gorm.io/gorm"

	"lawfirm/internal/domain"
)

// ListPracticeAreas returns all practice areas ordered by name.
func ListPracticeAreas(tx *gorm.DB) ([]domain.PracticeArea, error) {
	areas := []domain.PracticeArea{}
	err := tx.Order("name").Find(&areas).Error
	return areas, translate("list practice areas", err)
}

// GetPracticeArea returns the practice area with the given id or ErrNotFound.
func GetPracticeArea(tx *gorm.DB, id uint) (*domain.PracticeArea, error) {
	var area domain.PracticeArea
	if err := tx.First(&area, id).Error; err != nil {
		return nil, translate("get practice area", err)
	}
	return &area, nil
}

// FindPracticeAreaByName looks a practice area up by its unique name.
func FindPracticeAreaByName(tx *gorm.DB, name string) (*domain.PracticeArea, error) {
	var area domain.PracticeArea
	if err := tx.Where("name = ?", name).First(&area).Error; err != nil {
		return nil, translate("find practice area", err)
	}
	return &area, nil
}

// CreatePracticeArea inserts area and fills in its id.
func CreatePracticeArea(tx *gorm.DB, area *domain.PracticeArea) error {
	return translate("create practice area", tx.Omit("CaseResults").Create(area).Error)
}

// UpdatePracticeArea writes the given columns of an existing practice area.
func UpdatePracticeArea(tx *gorm.DB, area *domain.PracticeArea, changes Changes) error {
	return translate("update practice area", applyChanges(tx, area, changes))
}

// DeletePracticeArea removes the practice area together with its case
// results and lawyer links.
func DeletePracticeArea(tx *gorm.DB, area *domain.PracticeArea) error {
	if err := tx.Where("practice_area_id = ?", area.ID).Delete(&domain.CaseResult{}).Error; err != nil {
		return translate("delete practice area case results", err)
	}
	if err := tx.Where("practice_area_id = ?", area.ID).Delete(&domain.LawyerPracticeArea{}).Error; err != nil {
		return translate("delete practice area links", err)
	}
	return translate("delete practice area", tx.Delete(area).Error)
}
