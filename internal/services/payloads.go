package services

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	goa "goa.design/goa/v3/pkg"

	"lawfirm/internal/domain"
	apperrors "lawfirm/pkg/errors"
)

const (
	maxNameLength   = 255
	maxPhoneLength  = 50
	maxMethodLength = 50
	maxURLLength    = 512

	minRating = 1
	maxRating = 5
)

// Optional is a field of an update payload. It tells a missing key apart
// from an explicit null and from a value.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null returns an Optional that clears the column.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		var zero T
		o.Null, o.Value = true, zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

// present reports whether the key carried a non-null value.
func (o Optional[T]) present() bool {
	return o.Set && !o.Null
}

// column returns the value to write: nil for null, the value otherwise.
func (o Optional[T]) column() any {
	if o.Null {
		return nil
	}
	return o.Value
}

// PracticeAreaPayload creates a practice area.
type PracticeAreaPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// PracticeAreaUpdatePayload changes the fields that are set.
type PracticeAreaUpdatePayload struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
}

// LawyerPayload creates a lawyer.
type LawyerPayload struct {
	FullName        *string          `json:"full_name"`
	Title           *string          `json:"title"`
	Bio             *string          `json:"bio"`
	Email           *string          `json:"email"`
	Phone           *string          `json:"phone"`
	ExperienceYears *int             `json:"experience_years"`
	PhotoURL        *string          `json:"photo_url"`
	Languages       domain.Languages `json:"languages"`
	PracticeAreaIDs []uint           `json:"practice_area_ids"`
}

// LawyerUpdatePayload changes the fields that are set. A null languages or
// practice_area_ids value leaves the stored value alone, an empty list
// clears it.
type LawyerUpdatePayload struct {
	FullName        Optional[string]           `json:"full_name"`
	Title           Optional[string]           `json:"title"`
	Bio             Optional[string]           `json:"bio"`
	Email           Optional[string]           `json:"email"`
	Phone           Optional[string]           `json:"phone"`
	ExperienceYears Optional[int]              `json:"experience_years"`
	PhotoURL        Optional[string]           `json:"photo_url"`
	Languages       Optional[domain.Languages] `json:"languages"`
	PracticeAreaIDs Optional[[]uint]           `json:"practice_area_ids"`
}

// CaseResultPayload creates a case result.
type CaseResultPayload struct {
	Title          *string      `json:"title"`
	Summary        *string      `json:"summary"`
	Outcome        *string      `json:"outcome"`
	ResolvedOn     *domain.Date `json:"resolved_on"`
	LawyerID       *uint        `json:"lawyer_id"`
	PracticeAreaID *uint        `json:"practice_area_id"`
}

// CaseResultUpdatePayload changes the fields that are set.
type CaseResultUpdatePayload struct {
	Title          Optional[string]      `json:"title"`
	Summary        Optional[string]      `json:"summary"`
	Outcome        Optional[string]      `json:"outcome"`
	ResolvedOn     Optional[domain.Date] `json:"resolved_on"`
	LawyerID       Optional[uint]        `json:"lawyer_id"`
	PracticeAreaID Optional[uint]        `json:"practice_area_id"`
}

// TestimonialPayload creates a testimonial.
type TestimonialPayload struct {
	ClientName *string `json:"client_name"`
	Content    *string `json:"content"`
	Rating     *int    `json:"rating"`
	LawyerID   *uint   `json:"lawyer_id"`
}

// TestimonialUpdatePayload changes the fields that are set.
type TestimonialUpdatePayload struct {
	ClientName Optional[string] `json:"client_name"`
	Content    Optional[string] `json:"content"`
	Rating     Optional[int]    `json:"rating"`
	LawyerID   Optional[uint]   `json:"lawyer_id"`
}

// ContactMessagePayload is a contact form submission.
type ContactMessagePayload struct {
	FullName               *string `json:"full_name"`
	Email                  *string `json:"email"`
	Phone                  *string `json:"phone"`
	PreferredContactMethod *string `json:"preferred_contact_method"`
	Message                *string `json:"message"`
}

// fieldErrors collects validation failures so that a request reports all of
// them at once.
type fieldErrors []apperrors.FieldError

func (f *fieldErrors) add(field string, err error) {
	if err != nil {
		*f = append(*f, apperrors.FieldError{Field: field, Message: err.Error()})
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.Validation(f)
}

func (f *fieldErrors) required(field string, v *string, max int) {
	if v == nil {
		f.add(field, goa.MissingFieldError(field, "body"))
		return
	}
	f.text(field, *v, max)
}

// text checks a required column value: non-blank and at most max runes.
func (f *fieldErrors) text(field, v string, max int) {
	n := utf8.RuneCountInString(v)
	if strings.TrimSpace(v) == "" {
		f.add(field, goa.InvalidLengthError(field, v, n, 1, true))
		return
	}
	f.maxLength(field, v, max)
}

func (f *fieldErrors) maxLength(field, v string, max int) {
	if n := utf8.RuneCountInString(v); n > max {
		f.add(field, goa.InvalidLengthError(field, v, n, max, false))
	}
}

func (f *fieldErrors) optionalLength(field string, v *string, max int) {
	if v != nil {
		f.maxLength(field, *v, max)
	}
}

func (f *fieldErrors) email(field, v string) {
	f.add(field, goa.ValidateFormat(field, v, goa.FormatEmail))
}

func (f *fieldErrors) atLeast(field string, v, min int) {
	if v < min {
		f.add(field, goa.InvalidRangeError(field, v, min, true))
	}
}

func (f *fieldErrors) atMost(field string, v, max int) {
	if v > max {
		f.add(field, goa.InvalidRangeError(field, v, max, false))
	}
}

func (f *fieldErrors) rating(v int) {
	f.atLeast("rating", v, minRating)
	f.atMost("rating", v, maxRating)
}

// notNull rejects an explicit null for a column that cannot be empty.
func notNull[T any](f *fieldErrors, field string, o Optional[T]) {
	if o.Set && o.Null {
		f.add(field, goa.MissingFieldError(field, "body"))
	}
}

func (p *PracticeAreaPayload) Validate() error {
	var f fieldErrors
	f.required("name", p.Name, maxNameLength)
	return f.err()
}

func (p *PracticeAreaUpdatePayload) Validate() error {
	var f fieldErrors
	notNull(&f, "name", p.Name)
	if p.Name.present() {
		f.text("name", p.Name.Value, maxNameLength)
	}
	return f.err()
}

// normalize drops a blank email so that it is stored as absent.
func (p *LawyerPayload) normalize() {
	if p.Email != nil {
		if e := strings.TrimSpace(*p.Email); e == "" {
			p.Email = nil
		} else {
			p.Email = &e
		}
	}
}

func (p *LawyerPayload) Validate() error {
	p.normalize()

	var f fieldErrors
	f.required("full_name", p.FullName, maxNameLength)
	f.optionalLength("title", p.Title, maxNameLength)
	f.optionalLength("phone", p.Phone, maxPhoneLength)
	f.optionalLength("photo_url", p.PhotoURL, maxURLLength)
	if p.Email != nil {
		f.email("email", *p.Email)
	}
	if p.ExperienceYears != nil {
		f.atLeast("experience_years", *p.ExperienceYears, 0)
	}
	return f.err()
}

func (p *LawyerUpdatePayload) normalize() {
	if p.Email.present() {
		if e := strings.TrimSpace(p.Email.Value); e == "" {
			p.Email = Null[string]()
		} else {
			p.Email.Value = e
		}
	}
}

func (p *LawyerUpdatePayload) Validate() error {
	p.normalize()

	var f fieldErrors
	notNull(&f, "full_name", p.FullName)
	if p.FullName.present() {
		f.text("full_name", p.FullName.Value, maxNameLength)
	}
	if p.Title.present() {
		f.maxLength("title", p.Title.Value, maxNameLength)
	}
	if p.Phone.present() {
		f.maxLength("phone", p.Phone.Value, maxPhoneLength)
	}
	if p.PhotoURL.present() {
		f.maxLength("photo_url", p.PhotoURL.Value, maxURLLength)
	}
	if p.Email.present() {
		f.email("email", p.Email.Value)
	}
	if p.ExperienceYears.present() {
		f.atLeast("experience_years", p.ExperienceYears.Value, 0)
	}
	return f.err()
}

func (p *CaseResultPayload) Validate() error {
	var f fieldErrors
	f.required("title", p.Title, maxNameLength)
	if p.LawyerID == nil {
		f.add("lawyer_id", goa.MissingFieldError("lawyer_id", "body"))
	}
	return f.err()
}

func (p *CaseResultUpdatePayload) Validate() error {
	var f fieldErrors
	notNull(&f, "title", p.Title)
	notNull(&f, "lawyer_id", p.LawyerID)
	if p.Title.present() {
		f.text("title", p.Title.Value, maxNameLength)
	}
	return f.err()
}

func (p *TestimonialPayload) Validate() error {
	var f fieldErrors
	f.required("client_name", p.ClientName, maxNameLength)
	if p.Content == nil {
		f.add("content", goa.MissingFieldError("content", "body"))
	} else if strings.TrimSpace(*p.Content) == "" {
		f.add("content", goa.InvalidLengthError("content", *p.Content, utf8.RuneCountInString(*p.Content), 1, true))
	}
	if p.Rating != nil {
		f.rating(*p.Rating)
	}
	if p.LawyerID == nil {
		f.add("lawyer_id", goa.MissingFieldError("lawyer_id", "body"))
	}
	return f.err()
}

func (p *TestimonialUpdatePayload) Validate() error {
	var f fieldErrors
	notNull(&f, "client_name", p.ClientName)
	notNull(&f, "content", p.Content)
	notNull(&f, "lawyer_id", p.LawyerID)
	if p.ClientName.present() {
		f.text("client_name", p.ClientName.Value, maxNameLength)
	}
	if p.Content.present() && strings.TrimSpace(p.Content.Value) == "" {
		f.add("content", goa.InvalidLengthError("content", p.Content.Value, utf8.RuneCountInString(p.Content.Value), 1, true))
	}
	if p.Rating.present() {
		f.rating(p.Rating.Value)
	}
	return f.err()
}

// normalize trims every field and lower-cases the email. Blank optional
// fields become absent.
func (p *ContactMessagePayload) normalize() {
	trim := func(s **string, optional bool) {
		if *s == nil {
			return
		}
		v := strings.TrimSpace(**s)
		if optional && v == "" {
			*s = nil
			return
		}
		*s = &v
	}
	trim(&p.FullName, false)
	trim(&p.Email, false)
	trim(&p.Phone, true)
	trim(&p.PreferredContactMethod, true)
	trim(&p.Message, false)
	if p.Email != nil {
		lower := strings.ToLower(*p.Email)
		p.Email = &lower
	}
}

func (p *ContactMessagePayload) Validate() error {
	p.normalize()

	var f fieldErrors
	f.required("full_name", p.FullName, maxNameLength)
	if p.Email == nil {
		f.add("email", goa.MissingFieldError("email", "body"))
	} else {
		f.email("email", *p.Email)
	}
	f.optionalLength("phone", p.Phone, maxPhoneLength)
	f.optionalLength("preferred_contact_method", p.PreferredContactMethod, maxMethodLength)
	if p.Message == nil {
		f.add("message", goa.MissingFieldError("message", "body"))
	} else if *p.Message == "" {
		f.add("message", goa.InvalidLengthError("message", *p.Message, 0, 1, true))
	}
	return f.err()
}
