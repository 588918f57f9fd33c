package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"lawfirm/internal/domain"
	"lawfirm/internal/metrics"
	"lawfirm/internal/repository"
)

const msgCaseResultExists = "case result already exists"

// CaseResultService manages case results.
type CaseResultService struct {
	base
}

// NewCaseResultService creates a new case result service
func NewCaseResultService(db *gorm.DB, log zerolog.Logger) *CaseResultService {
	return &CaseResultService{base: newBase(db, log, "case_results")}
}

// List returns case results, most recently resolved first.
func (s *CaseResultService) List(ctx context.Context) ([]CaseResultView, error) {
	var results []domain.CaseResult
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		results, err = repository.ListCaseResults(tx)
		return err
	})
	if err != nil {
		return nil, storageError(err, msgCaseResultNotFound, msgCaseResultExists)
	}
	return caseResultViews(results), nil
}

// Get returns one case result.
func (s *CaseResultService) Get(ctx context.Context, id uint) (*CaseResultView, error) {
	var result *domain.CaseResult
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		result, err = repository.GetCaseResult(tx, id)
		return err
	})
	if err != nil {
		return nil, storageError(err, msgCaseResultNotFound, msgCaseResultExists)
	}
	view := caseResultView(result)
	return &view, nil
}

// Create adds a case result. An unknown lawyer or practice area is rejected
// by the store's foreign keys.
func (s *CaseResultService) Create(ctx context.Context, p *CaseResultPayload) (*CaseResultView, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	result := &domain.CaseResult{
		Title:          *p.Title,
		Summary:        p.Summary,
		Outcome:        p.Outcome,
		LawyerID:       *p.LawyerID,
		PracticeAreaID: p.PracticeAreaID,
	}
	if p.ResolvedOn != nil {
		day := p.ResolvedOn.Midnight()
		result.ResolvedOn = &day
	}

	err := s.inTx(ctx, func(tx *gorm.DB) error {
		if err := repository.CreateCaseResult(tx, result); err != nil {
			return err
		}
		var err error
		result, err = repository.GetCaseResult(tx, result.ID)
		return err
	})
	if err != nil {
		s.log.Warn().Err(err).Uint("lawyer_id", *p.LawyerID).Msg("create case result failed")
		return nil, storageError(err, msgCaseResultNotFound, msgCaseResultExists)
	}

	s.log.Info().Uint("id", result.ID).Uint("lawyer_id", result.LawyerID).Msg("case result created")
	metrics.RecordMutation("case_result", "create")
	view := caseResultView(result)
	return &view, nil
}

// Update changes the fields set in p.
func (s *CaseResultService) Update(ctx context.Context, id uint, p *CaseResultUpdatePayload) (*CaseResultView, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	changes := caseResultChanges(p)
	var result *domain.CaseResult
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		if result, err = repository.GetCaseResult(tx, id); err != nil {
			return err
		}
		if err = repository.UpdateCaseResult(tx, result, changes); err != nil {
			return err
		}
		result, err = repository.GetCaseResult(tx, id)
		return err
	})
	if err != nil {
		return nil, storageError(err, msgCaseResultNotFound, msgCaseResultExists)
	}

	s.log.Info().Uint("id", id).Int("fields", len(changes)).Msg("case result updated")
	metrics.RecordMutation("case_result", "update")
	view := caseResultView(result)
	return &view, nil
}

func caseResultChanges(p *CaseResultUpdatePayload) repository.Changes {
	changes := repository.Changes{}
	if p.Title.Set {
		changes["title"] = p.Title.Value
	}
	if p.Summary.Set {
		changes["summary"] = p.Summary.column()
	}
	if p.Outcome.Set {
		changes["outcome"] = p.Outcome.column()
	}
	if p.ResolvedOn.Set {
		var day *time.Time
		if !p.ResolvedOn.Null {
			t := p.ResolvedOn.Value.Midnight()
			day = &t
		}
		changes["resolved_on"] = day
	}
	if p.LawyerID.Set {
		changes["lawyer_id"] = p.LawyerID.Value
	}
	if p.PracticeAreaID.Set {
		changes["practice_area_id"] = p.PracticeAreaID.column()
	}
	return changes
}

// Delete removes a case result.
func (s *CaseResultService) Delete(ctx context.Context, id uint) error {
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		result, err := repository.GetCaseResult(tx, id)
		if err != nil {
			return err
		}
		return repository.DeleteCaseResult(tx, result)
	})
	if err != nil {
		return storageError(err, msgCaseResultNotFound, msgCaseResultExists)
	}

	s.log.Info().Uint("id", id).Msg("case result deleted")
	metrics.RecordMutation("case_result", "delete")
	return nil
}
