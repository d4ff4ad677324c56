// Package config loads runtime settings from the environment and optional
// .env files.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/language"
)

// Config holds runtime configuration for the API.
type Config struct {
	AppEnv         string        `envconfig:"APP_ENV" default:"development"`
	Port           string        `envconfig:"PORT" default:"5000"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`
	DBUser      string `envconfig:"DB_USER" default:"postgres"`
	DBPassword  string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName      string `envconfig:"DB_NAME" default:"postgres"`
	DBSSLMode   string `envconfig:"DB_SSLMODE" default:"disable"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173,http://localhost:5174"`
	JWTSecret          string `envconfig:"JWT_SECRET"`

	CollationLocale           string `envconfig:"COLLATION_LOCALE" default:"en"`
	CandidateFetchConcurrency int    `envconfig:"CANDIDATE_FETCH_CONCURRENCY" default:"4"`

	GoogleCredentials    string `envconfig:"GOOGLE_CREDENTIALS"`
	GoogleSheetID        string `envconfig:"GOOGLE_SHEET_ID"`
	GoogleSheetRange     string `envconfig:"GOOGLE_SHEET_RANGE" default:"Sheet1!A:R"`
	SheetsMirrorOnCreate bool   `envconfig:"SHEETS_MIRROR_ON_CREATE" default:"false"`

	collation language.Tag
}

// Load reads configs/.env and .env when present, then the process
// environment. Variables already set in the environment win.
func Load() (*Config, error) {
	for _, f := range []string{"configs/.env", ".env"} {
		_ = godotenv.Load(f)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	tag, err := language.Parse(cfg.CollationLocale)
	if err != nil {
		return nil, fmt.Errorf("invalid COLLATION_LOCALE %q: %w", cfg.CollationLocale, err)
	}
	cfg.collation = tag

	if cfg.CandidateFetchConcurrency < 1 {
		return nil, fmt.Errorf("CANDIDATE_FETCH_CONCURRENCY must be >= 1, got %d", cfg.CandidateFetchConcurrency)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	return &cfg, nil
}

// DSN returns DATABASE_URL when set, otherwise a postgres URL assembled from
// the DB_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Collation is the language used to order line items by description.
func (c *Config) Collation() language.Tag {
	if c.collation == language.Und {
		return language.English
	}
	return c.collation
}

// SheetsConfigured reports whether the spreadsheet mirror can be used.
func (c *Config) SheetsConfigured() bool {
	return c.GoogleCredentials != "" && c.GoogleSheetID != ""
}

func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
