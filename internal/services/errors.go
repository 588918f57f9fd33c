package services

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"lawfirm/internal/repository"
	apperrors "lawfirm/pkg/errors"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	msgPracticeAreaNotFound = "practice area not found"
	msgLawyerNotFound       = "lawyer not found"
	msgCaseResultNotFound   = "case result not found"
	msgTestimonialNotFound  = "testimonial not found"

	msgDanglingReference = "referenced lawyer or practice area does not exist"
)

// storageError turns a repository error into an AppError. Errors that
// already carry a code pass through; ErrNotFound becomes NOT_FOUND with
// notFound as message; constraint violations become CONFLICT or
// BAD_REQUEST; everything else is INTERNAL_ERROR.
func storageError(err error, notFound, conflict string) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound(notFound)
	case isUniqueViolation(err):
		return apperrors.Wrap(apperrors.ErrCodeConflict, conflict, err)
	case isForeignKeyViolation(err):
		return apperrors.Wrap(apperrors.ErrCodeBadRequest, msgDanglingReference, err)
	default:
		return apperrors.Wrap(apperrors.ErrCodeInternalError, "storage failure", err)
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}

	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}
