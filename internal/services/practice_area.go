package services

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"lawfirm/internal/domain"
	"lawfirm/internal/metrics"
	"lawfirm/internal/repository"
)

const msgPracticeAreaExists = "a practice area with this name already exists"

// PracticeAreaService manages practice areas.
type PracticeAreaService struct {
	base
}

// NewPracticeAreaService creates a new practice area service
func NewPracticeAreaService(db *gorm.DB, log zerolog.Logger) *PracticeAreaService {
	return &PracticeAreaService{base: newBase(db, log, "practice_areas")}
}

// List returns all practice areas ordered by name.
func (s *PracticeAreaService) List(ctx context.Context) ([]PracticeAreaView, error) {
	var areas []domain.PracticeArea
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		areas, err = repository.ListPracticeAreas(tx)
		return err
	})
	if err != nil {
		return nil, storageError(err, msgPracticeAreaNotFound, msgPracticeAreaExists)
	}
	return practiceAreaViews(areas), nil
}

// Get returns one practice area.
func (s *PracticeAreaService) Get(ctx context.Context, id uint) (*PracticeAreaView, error) {
	var area *domain.PracticeArea
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		area, err = repository.GetPracticeArea(tx, id)
		return err
	})
	if err != nil {
		return nil, storageError(err, msgPracticeAreaNotFound, msgPracticeAreaExists)
	}
	view := practiceAreaView(area)
	return &view, nil
}

// Create adds a practice area. Duplicate names fail with CONFLICT.
func (s *PracticeAreaService) Create(ctx context.Context, p *PracticeAreaPayload) (*PracticeAreaView, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	area := &domain.PracticeArea{Name: *p.Name, Description: p.Description}
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		return repository.CreatePracticeArea(tx, area)
	})
	if err != nil {
		s.log.Warn().Err(err).Str("name", area.Name).Msg("create practice area failed")
		return nil, storageError(err, msgPracticeAreaNotFound, msgPracticeAreaExists)
	}

	s.log.Info().Uint("id", area.ID).Str("name", area.Name).Msg("practice area created")
	metrics.RecordMutation("practice_area", "create")
	view := practiceAreaView(area)
	return &view, nil
}

// Update changes the fields set in p.
func (s *PracticeAreaService) Update(ctx context.Context, id uint, p *PracticeAreaUpdatePayload) (*PracticeAreaView, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	changes := repository.Changes{}
	if p.Name.Set {
		changes["name"] = p.Name.Value
	}
	if p.Description.Set {
		changes["description"] = p.Description.column()
	}

	var area *domain.PracticeArea
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		if area, err = repository.GetPracticeArea(tx, id); err != nil {
			return err
		}
		if err = repository.UpdatePracticeArea(tx, area, changes); err != nil {
			return err
		}
		area, err = repository.GetPracticeArea(tx, id)
		return err
	})
	if err != nil {
		return nil, storageError(err, msgPracticeAreaNotFound, msgPracticeAreaExists)
	}

	s.log.Info().Uint("id", id).Int("fields", len(changes)).Msg("practice area updated")
	metrics.RecordMutation("practice_area", "update")
	view := practiceAreaView(area)
	return &view, nil
}

// Delete removes a practice area together with its case results.
func (s *PracticeAreaService) Delete(ctx context.Context, id uint) error {
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		area, err := repository.GetPracticeArea(tx, id)
		if err != nil {
			return err
		}
		return repository.DeletePracticeArea(tx, area)
	})
	if err != nil {
		return storageError(err, msgPracticeAreaNotFound, msgPracticeAreaExists)
	}

	s.log.Info().Uint("id", id).Msg("practice area deleted")
	metrics.RecordMutation("practice_area", "delete")
	return nil
}
