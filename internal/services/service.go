// Package services holds the use cases behind the HTTP endpoints. Each call
// validates its input, runs in one database transaction and returns response
// views or an *errors.AppError.
package services

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"lawfirm/pkg/logger"
)

// base is embedded by every entity service.
type base struct {
	db  *gorm.DB
	log zerolog.Logger
}

func newBase(db *gorm.DB, log zerolog.Logger, component string) base {
	return base{db: db, log: logger.Component(log, component)}
}

// inTx runs fn in a transaction bound to ctx. The transaction commits when fn
// returns nil and rolls back on an error or a panic.
func (b base) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return b.db.WithContext(ctx).Transaction(fn)
}
