package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"lawfirm/internal/config"
	"lawfirm/internal/domain"
)

var (
	db *gorm.DB
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
	connMaxIdleTime = 10 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Init opens the configured database, migrates it and stores it as the
// process wide instance returned by GetDB.
func Init(cfg config.DatabaseConfig, log zerolog.Logger) error {
	conn, err := Open(cfg, log)
	if err != nil {
		return err
	}
	db = conn
	return nil
}

// Open connects to the database selected by cfg.URL (PostgreSQL or SQLite),
// verifies the connection and runs migrations.
func Open(cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector

	if cfg.IsPostgres() {
		log.Info().Msg("connecting to PostgreSQL database")
		dialector = postgres.Open(cfg.GetPostgresDSN())
	} else {
		dbPath := sqliteDSN(cfg.GetSQLitePath())
		log.Info().Str("path", cfg.GetSQLitePath()).Msg("connecting to SQLite database")
		sqlDB, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		// SQLite serializes writers; one connection avoids "database is locked"
		// between concurrent request transactions.
		sqlDB.SetMaxOpenConns(1)
		dialector = sqlite.Dialector{
			DriverName: "sqlite",
			DSN:        dbPath,
			Conn:       sqlDB,
		}
	}

	// SQL statements are never logged: they carry contact form contents.
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	conn, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.IsPostgres() {
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}

		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetMaxIdleConns(maxIdleConns)
		sqlDB.SetConnMaxLifetime(connMaxLifetime)
		sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

		log.Info().Int("max_open", maxOpenConns).Int("max_idle", maxIdleConns).Msg("connection pool configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := Ping(ctx, conn); err != nil {
		return nil, fmt.Errorf("database connection test failed: %w", err)
	}

	if err := registerMetricsCallbacks(conn); err != nil {
		return nil, fmt.Errorf("failed to register metrics callbacks: %w", err)
	}

	log.Info().Msg("running database migrations")
	if err := Migrate(conn); err != nil {
		return nil, err
	}

	log.Info().Msg("database connected and migrated successfully")
	return conn, nil
}

// Migrate creates or updates the schema.
func Migrate(conn *gorm.DB) error {
	if err := conn.SetupJoinTable(&domain.Lawyer{}, "PracticeAreas", &domain.LawyerPracticeArea{}); err != nil {
		return fmt.Errorf("failed to set up lawyer_practice_area join table: %w", err)
	}

	err := conn.AutoMigrate(
		&domain.PracticeArea{},
		&domain.Lawyer{},
		&domain.CaseResult{},
		&domain.Testimonial{},
		&domain.ContactMessage{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// sqliteDSN enables foreign key enforcement, which SQLite leaves off per
// connection by default.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Ping checks that the database answers.
func Ping(ctx context.Context, conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	return nil
}

// GetDB returns the database instance initialized by Init
func GetDB() *gorm.DB {
	if db == nil {
		panic("database not initialized: call database.Init first")
	}
	return db
}

// Close closes the process wide connection, if any.
func Close() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetStats returns database connection statistics
func GetStats(conn *gorm.DB) (*sql.DBStats, error) {
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	stats := sqlDB.Stats()
	return &stats, nil
}
