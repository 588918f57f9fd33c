package services

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"lawfirm/internal/domain"
	"lawfirm/internal/metrics"
	"lawfirm/internal/repository"
)

const msgLawyerExists = "a lawyer with this email already exists"

// LawyerFilter narrows List. See repository.LawyerFilter.
type LawyerFilter = repository.LawyerFilter

// LawyerService manages lawyer profiles and their practice area links.
type LawyerService struct {
	base
}

// NewLawyerService creates a new lawyer service
func NewLawyerService(db *gorm.DB, log zerolog.Logger) *LawyerService {
	return &LawyerService{base: newBase(db, log, "lawyers")}
}

// List returns lawyers ordered by full name, optionally filtered.
func (s *LawyerService) List(ctx context.Context, filter LawyerFilter) ([]LawyerView, error) {
	var lawyers []domain.Lawyer
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		lawyers, err = repository.ListLawyers(tx, filter)
		return err
	})
	if err != nil {
		return nil, storageError(err, msgLawyerNotFound, msgLawyerExists)
	}
	return lawyerViews(lawyers), nil
}

// Get returns the lawyer with case results and testimonials.
func (s *LawyerService) Get(ctx context.Context, id uint) (*LawyerDetailView, error) {
	var lawyer *domain.Lawyer
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		lawyer, err = repository.GetLawyer(tx, id)
		return err
	})
	if err != nil {
		return nil, storageError(err, msgLawyerNotFound, msgLawyerExists)
	}
	view := lawyerDetailView(lawyer)
	return &view, nil
}

// Create adds a lawyer and links the practice areas that exist among
// p.PracticeAreaIDs.
func (s *LawyerService) Create(ctx context.Context, p *LawyerPayload) (*LawyerView, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	lawyer := &domain.Lawyer{
		FullName:        *p.FullName,
		Title:           p.Title,
		Bio:             p.Bio,
		Email:           p.Email,
		Phone:           p.Phone,
		ExperienceYears: p.ExperienceYears,
		PhotoURL:        p.PhotoURL,
		Languages:       p.Languages,
	}
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		if err := repository.CreateLawyer(tx, lawyer); err != nil {
			return err
		}
		return repository.ReplacePracticeAreas(tx, lawyer, p.PracticeAreaIDs)
	})
	if err != nil {
		s.log.Warn().Err(err).Str("full_name", lawyer.FullName).Msg("create lawyer failed")
		return nil, storageError(err, msgLawyerNotFound, msgLawyerExists)
	}

	s.log.Info().
		Uint("id", lawyer.ID).
		Int("practice_areas", len(lawyer.PracticeAreas)).
		Msg("lawyer created")
	metrics.RecordMutation("lawyer", "create")
	view := lawyerView(lawyer)
	return &view, nil
}

// Update changes the fields set in p. A languages list replaces the stored
// one; a practice_area_ids list replaces every link, [] clears them.
func (s *LawyerService) Update(ctx context.Context, id uint, p *LawyerUpdatePayload) (*LawyerView, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	changes := lawyerChanges(p)
	var lawyer *domain.Lawyer
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		if lawyer, err = repository.GetLawyer(tx, id); err != nil {
			return err
		}
		if err = repository.UpdateLawyer(tx, lawyer, changes); err != nil {
			return err
		}
		if p.PracticeAreaIDs.present() {
			if err = repository.ReplacePracticeAreas(tx, lawyer, p.PracticeAreaIDs.Value); err != nil {
				return err
			}
		}
		lawyer, err = repository.GetLawyer(tx, id)
		return err
	})
	if err != nil {
		return nil, storageError(err, msgLawyerNotFound, msgLawyerExists)
	}

	s.log.Info().
		Uint("id", id).
		Int("fields", len(changes)).
		Bool("practice_areas_replaced", p.PracticeAreaIDs.present()).
		Msg("lawyer updated")
	metrics.RecordMutation("lawyer", "update")
	view := lawyerView(lawyer)
	return &view, nil
}

func lawyerChanges(p *LawyerUpdatePayload) repository.Changes {
	changes := repository.Changes{}
	if p.FullName.Set {
		changes["full_name"] = p.FullName.Value
	}
	if p.Title.Set {
		changes["title"] = p.Title.column()
	}
	if p.Bio.Set {
		changes["bio"] = p.Bio.column()
	}
	if p.Email.Set {
		changes["email"] = p.Email.column()
	}
	if p.Phone.Set {
		changes["phone"] = p.Phone.column()
	}
	if p.ExperienceYears.Set {
		changes["experience_years"] = p.ExperienceYears.column()
	}
	if p.PhotoURL.Set {
		changes["photo_url"] = p.PhotoURL.column()
	}
	if p.Languages.present() {
		languages := p.Languages.Value
		if languages == nil {
			languages = domain.Languages{}
		}
		changes["languages"] = languages
	}
	return changes
}

// Delete removes the lawyer with its case results, testimonials and links.
func (s *LawyerService) Delete(ctx context.Context, id uint) error {
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		lawyer, err := repository.GetLawyer(tx, id)
		if err != nil {
			return err
		}
		return repository.DeleteLawyer(tx, lawyer)
	})
	if err != nil {
		return storageError(err, msgLawyerNotFound, msgLawyerExists)
	}

	s.log.Info().Uint("id", id).Msg("lawyer deleted")
	metrics.RecordMutation("lawyer", "delete")
	return nil
}
