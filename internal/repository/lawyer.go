package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lawfirm/internal/domain"
)

// LawyerFilter narrows ListLawyers. Zero values disable a filter; set
// filters are AND-ed.
type LawyerFilter struct {
	// PracticeAreaID keeps lawyers linked to this practice area.
	PracticeAreaID *uint
	// Search keeps lawyers whose full name or bio contains the term,
	// ignoring case.
	Search string
}

func practiceAreasByName(db *gorm.DB) *gorm.DB {
	return db.Order("name")
}

func caseResultOrder(db *gorm.DB) *gorm.DB {
	return db.Order("resolved_on IS NULL").Order("resolved_on DESC").Order("title")
}

// ListLawyers returns lawyers ordered by full name with their practice areas.
func ListLawyers(tx *gorm.DB, filter LawyerFilter) ([]domain.Lawyer, error) {
	q := tx.Model(&domain.Lawyer{}).Preload("PracticeAreas", practiceAreasByName)

	if filter.PracticeAreaID != nil {
		linked := tx.Model(&domain.LawyerPracticeArea{}).
			Select("lawyer_id").
			Where("practice_area_id = ?", *filter.PracticeAreaID)
		q = q.Where("lawyers.id IN (?)", linked)
	}

	if term := strings.TrimSpace(filter.Search); term != "" {
		pattern := likePattern(term)
		q = q.Where(
			`(LOWER(lawyers.full_name) LIKE ? ESCAPE '\' OR LOWER(COALESCE(lawyers.bio, '')) LIKE ? ESCAPE '\')`,
			pattern, pattern,
		)
	}

	lawyers := []domain.Lawyer{}
	err := q.Order("lawyers.full_name").Order("lawyers.id").Find(&lawyers).Error
	return lawyers, translate("list lawyers", err)
}

// GetLawyer returns the lawyer with its practice areas, case results and
// testimonials, or ErrNotFound.
func GetLawyer(tx *gorm.DB, id uint) (*domain.Lawyer, error) {
	var lawyer domain.Lawyer
	err := tx.
		Preload("PracticeAreas", practiceAreasByName).
		Preload("CaseResults", caseResultOrder).
		Preload("CaseResults.PracticeArea").
		Preload("Testimonials", func(db *gorm.DB) *gorm.DB { return db.Order("id DESC") }).
		First(&lawyer, id).Error
	if err != nil {
		return nil, translate("get lawyer", err)
	}
	return &lawyer, nil
}

// FindLawyerByEmail looks a lawyer up by its unique email.
func FindLawyerByEmail(tx *gorm.DB, email string) (*domain.Lawyer, error) {
	var lawyer domain.Lawyer
	if err := tx.Where("email = ?", email).First(&lawyer).Error; err != nil {
		return nil, translate("find lawyer", err)
	}
	return &lawyer, nil
}

// CreateLawyer inserts the lawyer row only; links are written by
// ReplacePracticeAreas.
func CreateLawyer(tx *gorm.DB, lawyer *domain.Lawyer) error {
	if lawyer.Languages == nil {
		lawyer.Languages = domain.Languages{}
	}
	return translate("create lawyer", tx.Omit(clause.Associations).Create(lawyer).Error)
}

// UpdateLawyer writes the given columns of an existing lawyer.
func UpdateLawyer(tx *gorm.DB, lawyer *domain.Lawyer, changes Changes) error {
	return translate("update lawyer", applyChanges(tx.Omit(clause.Associations), lawyer, changes))
}

// ReplacePracticeAreas makes ids the complete set of practice areas linked to
// the lawyer. Ids without a matching practice area are dropped; an empty list
// removes every link. Old links are deleted and the new ones inserted in the
// caller's transaction, so readers never observe a half-replaced set.
func ReplacePracticeAreas(tx *gorm.DB, lawyer *domain.Lawyer, ids []uint) error {
	areas := []domain.PracticeArea{}
	if len(ids) > 0 {
		if err := tx.Where("id IN ?", ids).Order("name").Find(&areas).Error; err != nil {
			return translate("load practice areas", err)
		}
	}

	if err := tx.Where("lawyer_id = ?", lawyer.ID).Delete(&domain.LawyerPracticeArea{}).Error; err != nil {
		return translate("clear practice area links", err)
	}

	if len(areas) > 0 {
		links := make([]domain.LawyerPracticeArea, len(areas))
		for i, area := range areas {
			links[i] = domain.LawyerPracticeArea{LawyerID: lawyer.ID, PracticeAreaID: area.ID}
		}
		if err := tx.Create(&links).Error; err != nil {
			return translate("link practice areas", err)
		}
	}

	lawyer.PracticeAreas = areas
	return nil
}

// DeleteLawyer removes the lawyer together with its case results,
// testimonials and practice area links.
func DeleteLawyer(tx *gorm.DB, lawyer *domain.Lawyer) error {
	if err := tx.Where("lawyer_id = ?", lawyer.ID).Delete(&domain.CaseResult{}).Error; err != nil {
		return translate("delete lawyer case results", err)
	}
	if err := tx.Where("lawyer_id = ?", lawyer.ID).Delete(&domain.Testimonial{}).Error; err != nil {
		return translate("delete lawyer testimonials", err)
	}
	if err := tx.Where("lawyer_id = ?", lawyer.ID).Delete(&domain.LawyerPracticeArea{}).Error; err != nil {
		return translate("delete lawyer links", err)
	}
	return translate("delete lawyer", tx.Delete(&domain.Lawyer{}, lawyer.ID).Error)
}
