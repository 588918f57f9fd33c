package domain

// Testimonial is client feedback about a lawyer.
type Testimonial struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ClientName string `gorm:"size:255;not null" json:"client_name"`
	Content    string `gorm:"type:text;not null" json:"content"`
	Rating     *int   `json:"rating"`

	LawyerID uint    `gorm:"not null;index" json:"lawyer_id"`
	Lawyer   *Lawyer `json:"-"`
}

// TableName specifies the table name for Testimonial
func (Testimonial) TableName() string {
	return "testimonials"
}
