package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"lawfirm/internal/database"
	apperrors "lawfirm/pkg/errors"
)

const readyTimeout = 2 * time.Second

// HealthResult is the body of the health endpoints.
type HealthResult struct {
	Status string `json:"status"`
}

// BannerResult is the body of GET /.
type BannerResult struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// HealthService implements the health service
type HealthService struct {
	db      *gorm.DB
	name    string
	version string
}

// NewHealthService creates a new health service
func NewHealthService(db *gorm.DB, name, version string) *HealthService {
	return &HealthService{db: db, name: name, version: version}
}

// Banner describes the service.
func (s *HealthService) Banner(ctx context.Context) *BannerResult {
	return &BannerResult{Message: s.name + " is running", Version: s.version}
}

// Check is the liveness probe.
func (s *HealthService) Check(ctx context.Context) *HealthResult {
	return &HealthResult{Status: "ok"}
}

// Ready reports whether the database answers.
func (s *HealthService) Ready(ctx context.Context) (*HealthResult, error) {
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()

	if err := database.Ping(ctx, s.db); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "database unavailable", err)
	}
	return &HealthResult{Status: "ok"}, nil
}
