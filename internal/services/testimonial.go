package services

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"lawfirm/internal/domain"
	"lawfirm/internal/metrics"
	"lawfirm/internal/repository"
)

const msgTestimonialExists = "testimonial already exists"

// TestimonialService manages client testimonials.
type TestimonialService struct {
	base
}

// NewTestimonialService creates a new testimonial service
func NewTestimonialService(db *gorm.DB, log zerolog.Logger) *TestimonialService {
	return &TestimonialService{base: newBase(db, log, "testimonials")}
}

// List returns testimonials, newest first.
func (s *TestimonialService) List(ctx context.Context) ([]TestimonialView, error) {
	var testimonials []domain.Testimonial
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		testimonials, err = repository.ListTestimonials(tx)
		return err
	})
	if err != nil {
		return nil, storageError(err, msgTestimonialNotFound, msgTestimonialExists)
	}
	return testimonialViews(testimonials), nil
}

// Get returns one testimonial.
func (s *TestimonialService) Get(ctx context.Context, id uint) (*TestimonialView, error) {
	var testimonial *domain.Testimonial
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		testimonial, err = repository.GetTestimonial(tx, id)
		return err
	})
	if err != nil {
		return nil, storageError(err, msgTestimonialNotFound, msgTestimonialExists)
	}
	view := testimonialView(testimonial)
	return &view, nil
}

// Create adds a testimonial. Ratings outside 1..5 never reach the store.
func (s *TestimonialService) Create(ctx context.Context, p *TestimonialPayload) (*TestimonialView, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	testimonial := &domain.Testimonial{
		ClientName: *p.ClientName,
		Content:    *p.Content,
		Rating:     p.Rating,
		LawyerID:   *p.LawyerID,
	}
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		if err := repository.CreateTestimonial(tx, testimonial); err != nil {
			return err
		}
		var err error
		testimonial, err = repository.GetTestimonial(tx, testimonial.ID)
		return err
	})
	if err != nil {
		s.log.Warn().Err(err).Uint("lawyer_id", *p.LawyerID).Msg("create testimonial failed")
		return nil, storageError(err, msgTestimonialNotFound, msgTestimonialExists)
	}

	s.log.Info().Uint("id", testimonial.ID).Uint("lawyer_id", testimonial.LawyerID).Msg("testimonial created")
	metrics.RecordMutation("testimonial", "create")
	view := testimonialView(testimonial)
	return &view, nil
}

// Update changes the fields set in p.
func (s *TestimonialService) Update(ctx context.Context, id uint, p *TestimonialUpdatePayload) (*TestimonialView, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	changes := repository.Changes{}
	if p.ClientName.Set {
		changes["client_name"] = p.ClientName.Value
	}
	if p.Content.Set {
		changes["content"] = p.Content.Value
	}
	if p.Rating.Set {
		changes["rating"] = p.Rating.column()
	}
	if p.LawyerID.Set {
		changes["lawyer_id"] = p.LawyerID.Value
	}

	var testimonial *domain.Testimonial
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		if testimonial, err = repository.GetTestimonial(tx, id); err != nil {
			return err
		}
		if err = repository.UpdateTestimonial(tx, testimonial, changes); err != nil {
			return err
		}
		testimonial, err = repository.GetTestimonial(tx, id)
		return err
	})
	if err != nil {
		return nil, storageError(err, msgTestimonialNotFound, msgTestimonialExists)
	}

	s.log.Info().Uint("id", id).Int("fields", len(changes)).Msg("testimonial updated")
	metrics.RecordMutation("testimonial", "update")
	view := testimonialView(testimonial)
	return &view, nil
}

// Delete removes a testimonial.
func (s *TestimonialService) Delete(ctx context.Context, id uint) error {
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		testimonial, err := repository.GetTestimonial(tx, id)
		if err != nil {
			return err
		}
		return repository.DeleteTestimonial(tx, testimonial)
	})
	if err != nil {
		return storageError(err, msgTestimonialNotFound, msgTestimonialExists)
	}

	s.log.Info().Uint("id", id).Msg("testimonial deleted")
	metrics.RecordMutation("testimonial", "delete")
	return nil
}
