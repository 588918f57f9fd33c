package domain

// PracticeArea is a named legal specialty, e.g. "Family Law".
type PracticeArea struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description *string `gorm:"type:text" json:"description"`

	// Deleting a practice area removes its case results.
	CaseResults []CaseResult `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for PracticeArea
func (PracticeArea) TableName() string {
	return "practice_areas"
}
