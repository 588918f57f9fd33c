package services

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lawfirm/internal/testutil"
	apperrors "lawfirm/pkg/errors"
)

func newMockPostgres(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestPostgresUniqueViolationRollsBack(t *testing.T) {
	db, mock := newMockPostgres(t)
	svc := NewPracticeAreaService(db, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "practice_areas"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), &PracticeAreaPayload{Name: testutil.Ptr("Family Law")})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresForeignKeyViolation(t *testing.T) {
	db, mock := newMockPostgres(t)
	svc := NewTestimonialService(db, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "testimonials"`)).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "insert or update violates foreign key constraint"})
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), &TestimonialPayload{
		ClientName: testutil.Ptr("Client"),
		Content:    testutil.Ptr("Great"),
		LawyerID:   testutil.Ptr(uint(9)),
	})
	assert.True(t, apperrors.IsBadRequest(err), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFailureIsInternal(t *testing.T) {
	db, mock := newMockPostgres(t)
	svc := NewPracticeAreaService(db, zerolog.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "practice_areas"`)).
		WillReturnError(fmt.Errorf("connection reset by peer"))

	_, err := svc.List(context.Background())
	assert.Equal(t, apperrors.ErrCodeInternalError, apperrors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorageErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.ErrorCode
	}{
		{"pg unique", &pgconn.PgError{Code: pgUniqueViolation}, apperrors.ErrCodeConflict},
		{"pg foreign key", &pgconn.PgError{Code: pgForeignKeyViolation}, apperrors.ErrCodeBadRequest},
		{"pg other", &pgconn.PgError{Code: "57014"}, apperrors.ErrCodeInternalError},
		{"gorm duplicated", gorm.ErrDuplicatedKey, apperrors.ErrCodeConflict},
		{"gorm foreign key", gorm.ErrForeignKeyViolated, apperrors.ErrCodeBadRequest},
		{"wrapped", fmt.Errorf("create lawyer: %w", gorm.ErrDuplicatedKey), apperrors.ErrCodeConflict},
		{"sqlite text", fmt.Errorf("constraint failed: UNIQUE constraint failed: lawyers.email (2067)"), apperrors.ErrCodeConflict},
		{"sqlite fk text", fmt.Errorf("constraint failed: FOREIGN KEY constraint failed (787)"), apperrors.ErrCodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.CodeOf(storageError(tt.err, "not found", "conflict")))
		})
	}
}

func TestReadsRunInTransaction(t *testing.T) {
	db, mock := newMockPostgres(t)
	log := zerolog.Nop()
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "practice_areas"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Family Law"))
	mock.ExpectCommit()
	areas, err := NewPracticeAreaService(db, log).List(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 1)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "practice_areas"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	mock.ExpectRollback()
	_, err = NewPracticeAreaService(db, log).Get(ctx, 7)
	assert.True(t, apperrors.IsNotFound(err), "got %v", err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "lawyers"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name"}))
	mock.ExpectCommit()
	_, err = NewLawyerService(db, log).List(ctx, LawyerFilter{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "contact_messages"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name"}))
	mock.ExpectCommit()
	_, err = NewContactService(db, nil, log).List(ctx)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
