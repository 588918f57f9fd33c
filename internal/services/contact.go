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

const notifyTimeout = 30 * time.Second

// ContactNotifier is told about every stored contact message.
type ContactNotifier interface {
	NotifyContactMessage(ctx context.Context, m *domain.ContactMessage) error
}

// ContactService stores contact form submissions. Messages are never
// updated or deleted.
type ContactService struct {
	base
	notifier ContactNotifier
}

// NewContactService creates a new contact service. notifier may be nil.
func NewContactService(db *gorm.DB, notifier ContactNotifier, log zerolog.Logger) *ContactService {
	return &ContactService{
		base:     newBase(db, log, "contact"),
		notifier: notifier,
	}
}

// List returns contact messages, newest first.
func (s *ContactService) List(ctx context.Context) ([]ContactMessageView, error) {
	var messages []domain.ContactMessage
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		messages, err = repository.ListContactMessages(tx)
		return err
	})
	if err != nil {
		return nil, storageError(err, "contact message not found", "contact message already exists")
	}
	return contactMessageViews(messages), nil
}

// Create stores a submission. The notification is sent in the background
// after commit; its failure is logged and does not fail the request.
func (s *ContactService) Create(ctx context.Context, p *ContactMessagePayload) (*ContactMessageView, error) {
	if err := p.Validate(); err != nil {
		s.log.Debug().Err(err).Msg("contact message rejected")
		return nil, err
	}

	message := &domain.ContactMessage{
		FullName:               *p.FullName,
		Email:                  *p.Email,
		Phone:                  p.Phone,
		PreferredContactMethod: p.PreferredContactMethod,
		Message:                *p.Message,
	}
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		return repository.CreateContactMessage(tx, message)
	})
	if err != nil {
		s.log.Error().Err(err).Str("email", message.Email).Msg("store contact message failed")
		return nil, storageError(err, "contact message not found", "contact message already exists")
	}

	s.log.Info().Uint("id", message.ID).Str("email", message.Email).Msg("contact message received")
	metrics.RecordContactMessage()

	if s.notifier != nil {
		stored := *message
		go s.notify(&stored)
	}

	view := contactMessageView(message)
	return &view, nil
}

func (s *ContactService) notify(m *domain.ContactMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.notifier.NotifyContactMessage(ctx, m); err != nil {
		s.log.Warn().Err(err).Uint("id", m.ID).Msg("contact notification failed")
		return
	}
	s.log.Debug().Uint("id", m.ID).Msg("contact notification sent")
}
