package domain

import "time"

// CaseResult records the outcome of a case handled by a lawyer.
type CaseResult struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	Summary    *string    `gorm:"type:text" json:"summary"`
	Outcome    *string    `gorm:"type:text" json:"outcome"`
	ResolvedOn *time.Time `gorm:"type:date;index" json:"resolved_on"`

	LawyerID       uint  `gorm:"not null;index" json:"lawyer_id"`
	PracticeAreaID *uint `gorm:"index" json:"practice_area_id"`

	Lawyer       *Lawyer       `json:"-"`
	PracticeArea *PracticeArea `json:"-"`
}

// TableName specifies the table name for CaseResult
func (CaseResult) TableName() string {
	return "case_results"
}
