package services

import (
	"time"

	"lawfirm/internal/domain"
)

// PracticeAreaView is the response shape of a practice area.
type PracticeAreaView struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// LawyerView is the response shape of a lawyer in lists and after writes.
type LawyerView struct {
	ID              uint               `json:"id"`
	FullName        string             `json:"full_name"`
	Title           *string            `json:"title"`
	Bio             *string            `json:"bio"`
	Email           *string            `json:"email"`
	Phone           *string            `json:"phone"`
	ExperienceYears *int               `json:"experience_years"`
	PhotoURL        *string            `json:"photo_url"`
	Languages       domain.Languages   `json:"languages"`
	PracticeAreas   []PracticeAreaView `json:"practice_areas"`
}

// LawyerDetailView adds the lawyer's case results and testimonials.
type LawyerDetailView struct {
	LawyerView
	CaseResults  []CaseResultView  `json:"case_results"`
	Testimonials []TestimonialView `json:"testimonials"`
}

// CaseResultView carries the names of the related lawyer and practice area.
// They are copied from the relations on every read and never stored.
type CaseResultView struct {
	ID               uint         `json:"id"`
	Title            string       `json:"title"`
	Summary          *string      `json:"summary"`
	Outcome          *string      `json:"outcome"`
	ResolvedOn       *domain.Date `json:"resolved_on"`
	LawyerID         uint         `json:"lawyer_id"`
	PracticeAreaID   *uint        `json:"practice_area_id"`
	LawyerName       *string      `json:"lawyer_name"`
	PracticeAreaName *string      `json:"practice_area_name"`
}

// TestimonialView carries the name of the related lawyer.
type TestimonialView struct {
	ID         uint    `json:"id"`
	ClientName string  `json:"client_name"`
	Content    string  `json:"content"`
	Rating     *int    `json:"rating"`
	LawyerID   uint    `json:"lawyer_id"`
	LawyerName *string `json:"lawyer_name"`
}

// ContactMessageView is the response shape of a contact message.
type ContactMessageView struct {
	ID                     uint      `json:"id"`
	FullName               string    `json:"full_name"`
	Email                  string    `json:"email"`
	Phone                  *string   `json:"phone"`
	PreferredContactMethod *string   `json:"preferred_contact_method"`
	Message                string    `json:"message"`
	CreatedAt              time.Time `json:"created_at"`
}

func practiceAreaView(a *domain.PracticeArea) PracticeAreaView {
	return PracticeAreaView{ID: a.ID, Name: a.Name, Description: a.Description}
}

func practiceAreaViews(areas []domain.PracticeArea) []PracticeAreaView {
	views := make([]PracticeAreaView, len(areas))
	for i := range areas {
		views[i] = practiceAreaView(&areas[i])
	}
	return views
}

func lawyerView(l *domain.Lawyer) LawyerView {
	languages := l.Languages
	if languages == nil {
		languages = domain.Languages{}
	}
	return LawyerView{
		ID:              l.ID,
		FullName:        l.FullName,
		Title:           l.Title,
		Bio:             l.Bio,
		Email:           l.Email,
		Phone:           l.Phone,
		ExperienceYears: l.ExperienceYears,
		PhotoURL:        l.PhotoURL,
		Languages:       languages,
		PracticeAreas:   practiceAreaViews(l.PracticeAreas),
	}
}

func lawyerViews(lawyers []domain.Lawyer) []LawyerView {
	views := make([]LawyerView, len(lawyers))
	for i := range lawyers {
		views[i] = lawyerView(&lawyers[i])
	}
	return views
}

// lawyerDetailView expects CaseResults and Testimonials preloaded without
// their Lawyer; the lawyer itself supplies the name.
func lawyerDetailView(l *domain.Lawyer) LawyerDetailView {
	detail := LawyerDetailView{
		LawyerView:   lawyerView(l),
		CaseResults:  make([]CaseResultView, len(l.CaseResults)),
		Testimonials: make([]TestimonialView, len(l.Testimonials)),
	}
	for i := range l.CaseResults {
		cr := l.CaseResults[i]
		cr.Lawyer = l
		detail.CaseResults[i] = caseResultView(&cr)
	}
	for i := range l.Testimonials {
		t := l.Testimonials[i]
		t.Lawyer = l
		detail.Testimonials[i] = testimonialView(&t)
	}
	return detail
}

func caseResultView(cr *domain.CaseResult) CaseResultView {
	view := CaseResultView{
		ID:             cr.ID,
		Title:          cr.Title,
		Summary:        cr.Summary,
		Outcome:        cr.Outcome,
		LawyerID:       cr.LawyerID,
		PracticeAreaID: cr.PracticeAreaID,
	}
	if cr.ResolvedOn != nil {
		d := domain.DateOf(*cr.ResolvedOn)
		view.ResolvedOn = &d
	}
	if cr.Lawyer != nil {
		name := cr.Lawyer.FullName
		view.LawyerName = &name
	}
	if cr.PracticeArea != nil {
		name := cr.PracticeArea.Name
		view.PracticeAreaName = &name
	}
	return view
}

func caseResultViews(results []domain.CaseResult) []CaseResultView {
	views := make([]CaseResultView, len(results))
	for i := range results {
		views[i] = caseResultView(&results[i])
	}
	return views
}

func testimonialView(t *domain.Testimonial) TestimonialView {
	view := TestimonialView{
		ID:         t.ID,
		ClientName: t.ClientName,
		Content:    t.Content,
		Rating:     t.Rating,
		LawyerID:   t.LawyerID,
	}
	if t.Lawyer != nil {
		name := t.Lawyer.FullName
		view.LawyerName = &name
	}
	return view
}

func testimonialViews(testimonials []domain.Testimonial) []TestimonialView {
	views := make([]TestimonialView, len(testimonials))
	for i := range testimonials {
		views[i] = testimonialView(&testimonials[i])
	}
	return views
}

func contactMessageView(m *domain.ContactMessage) ContactMessageView {
	return ContactMessageView{
		ID:                     m.ID,
		FullName:               m.FullName,
		Email:                  m.Email,
		Phone:                  m.Phone,
		PreferredContactMethod: m.PreferredContactMethod,
		Message:                m.Message,
		CreatedAt:              m.CreatedAt.UTC(),
	}
}

func contactMessageViews(messages []domain.ContactMessage) []ContactMessageView {
	views := make([]ContactMessageView, len(messages))
	for i := range messages {
		views[i] = contactMessageView(&messages[i])
	}
	return views
}
