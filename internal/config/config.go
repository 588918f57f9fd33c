package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	App      AppConfig
	Log      LogConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Email    EmailConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name    string
	Version string
	Debug   bool
	Port    string
	Host    string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Pretty bool
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// EmailConfig holds the SMTP settings used for contact message notifications
type EmailConfig struct {
	Enabled   bool
	SMTPHost  string
	SMTPPort  int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	NotifyTo  string
}

var globalConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	debug := getEnvAsBool("DEBUG", false)
	config := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "Law Firm API"),
			Version: getEnv("APP_VERSION", "1.0.0"),
			Debug:   debug,
			Port:    getEnv("PORT", "8000"),
			Host:    getEnv("HOST", "0.0.0.0"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvAsBool("LOG_PRETTY", debug),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", "sqlite:///./law_firm.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
			AllowedHeaders: []string{"*"},
			MaxAge:         86400,
		},
		Email: EmailConfig{
			Enabled:   getEnvAsBool("EMAIL_ENABLED", false),
			SMTPHost:  getEnv("SMTP_HOST", "localhost"),
			SMTPPort:  getEnvAsInt("SMTP_PORT", 587),
			Username:  getEnv("SMTP_USERNAME", ""),
			Password:  getEnv("SMTP_PASSWORD", ""),
			FromEmail: getEnv("EMAIL_FROM", "noreply@lawfirm.example"),
			FromName:  getEnv("EMAIL_FROM_NAME", "Law Firm Website"),
			NotifyTo:  getEnv("NOTIFY_EMAIL", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	globalConfig = config
	return config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.App.Port == "" {
		return fmt.Errorf("PORT must be set")
	}
	if _, err := strconv.Atoi(cfg.App.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", cfg.App.Port)
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	if cfg.Email.Enabled && cfg.Email.NotifyTo == "" {
		return fmt.Errorf("NOTIFY_EMAIL must be set when EMAIL_ENABLED is true")
	}
	return nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		config, _ := Load()
		return config
	}
	return globalConfig
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}

// IsPostgres checks if the database URL is for PostgreSQL
func (c *DatabaseConfig) IsPostgres() bool {
	scheme := c.scheme()
	return scheme == "postgres" || scheme == "postgresql"
}

// scheme returns the URL scheme without any "+driver" suffix, so that
// SQLAlchemy style URLs such as postgresql+psycopg2:// are understood.
func (c *DatabaseConfig) scheme() string {
	i := strings.Index(c.URL, "://")
	if i <= 0 {
		return ""
	}
	scheme := strings.ToLower(c.URL[:i])
	if plus := strings.Index(scheme, "+"); plus >= 0 {
		scheme = scheme[:plus]
	}
	return scheme
}

// GetPostgresDSN returns a connection string pgx understands.
// Key/value DSNs are passed through untouched; URLs get their scheme
// normalized to postgres:// and sslmode defaulted to disable.
func (c *DatabaseConfig) GetPostgresDSN() string {
	raw := c.URL

	if !strings.Contains(raw, "://") {
		return raw
	}

	u, err := url.Parse("postgres" + raw[strings.Index(raw, "://"):])
	if err != nil {
		return raw
	}

	q := u.Query()
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "disable")
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// GetSQLitePath extracts SQLite database path from URL.
// sqlite:///./law_firm.db -> ./law_firm.db, sqlite:////abs/x.db -> /abs/x.db
func (c *DatabaseConfig) GetSQLitePath() string {
	raw := c.URL
	if c.scheme() != "sqlite" {
		return raw
	}
	rest := raw[strings.Index(raw, "://")+3:]
	return strings.TrimPrefix(rest, "/")
}
