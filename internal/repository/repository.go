// Package repository is the data-access layer. Every function takes the
// transaction-scoped *gorm.DB of the current request; none of them open or
// commit transactions themselves.
package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("record not found")

// Changes maps column names to new values for a partial update. Only the
// columns present are written.
type Changes map[string]any

func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func applyChanges(tx *gorm.DB, model any, changes Changes) error {
	if len(changes) == 0 {
		return nil
	}
	return tx.Model(model).Updates(map[string]any(changes)).Error
}

// likePattern builds a case-insensitive substring pattern for LIKE ... ESCAPE '\'.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}
