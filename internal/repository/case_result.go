package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lawfirm/internal/domain"
)

// ListCaseResults returns case results, newest resolution first, undated
// last, ties broken by title. Lawyer and practice area are preloaded.
func ListCaseResults(tx *gorm.DB) ([]domain.CaseResult, error) {
	results := []domain.CaseResult{}
	err := caseResultOrder(tx.Preload("Lawyer").Preload("PracticeArea")).
		Order("id").
		Find(&results).Error
	return results, translate("list case results", err)
}

// GetCaseResult returns the case result with its lawyer and practice area,
// or ErrNotFound.
func GetCaseResult(tx *gorm.DB, id uint) (*domain.CaseResult, error) {
	var result domain.CaseResult
	if err := tx.Preload("Lawyer").Preload("PracticeArea").First(&result, id).Error; err != nil {
		return nil, translate("get case result", err)
	}
	return &result, nil
}

// CreateCaseResult inserts result and fills in its id.
func CreateCaseResult(tx *gorm.DB, result *domain.CaseResult) error {
	return translate("create case result", tx.Omit(clause.Associations).Create(result).Error)
}

// UpdateCaseResult writes the given columns of an existing case result.
func UpdateCaseResult(tx *gorm.DB, result *domain.CaseResult, changes Changes) error {
	return translate("update case result", applyChanges(tx.Omit(clause.Associations), result, changes))
}

// DeleteCaseResult removes a case result.
func DeleteCaseResult(tx *gorm.DB, result *domain.CaseResult) error {
	return translate("delete case result", tx.Delete(&domain.CaseResult{}, result.ID).Error)
}
