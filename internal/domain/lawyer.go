package domain

// Lawyer is a public lawyer profile.
type Lawyer struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	FullName        string    `gorm:"size:255;not null;index" json:"full_name"`
	Title           *string   `gorm:"size:255" json:"title"`
	Bio             *string   `gorm:"type:text" json:"bio"`
	Email           *string   `gorm:"size:255;uniqueIndex" json:"email"`
	Phone           *string   `gorm:"size:50" json:"phone"`
	ExperienceYears *int      `json:"experience_years"`
	PhotoURL        *string   `gorm:"size:512" json:"photo_url"`
	Languages       Languages `gorm:"not null;default:'[]'" json:"languages"`

	PracticeAreas []PracticeArea `gorm:"many2many:lawyer_practice_area;constraint:OnDelete:CASCADE" json:"practice_areas"`
	CaseResults   []CaseResult   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Testimonials  []Testimonial  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Lawyer
func (Lawyer) TableName() string {
	return "lawyers"
}

// LawyerPracticeArea is one row of the lawyer <-> practice area link table.
// The composite primary key keeps each pair unique.
type LawyerPracticeArea struct {
	LawyerID       uint `gorm:"primaryKey;autoIncrement:false"`
	PracticeAreaID uint `gorm:"primaryKey;autoIncrement:false"`
}

// TableName specifies the table name for LawyerPracticeArea
func (LawyerPracticeArea) TableName() string {
	return "lawyer_practice_area"
}
