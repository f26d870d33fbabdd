// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles,
// with an optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is the dotenv file read by Load when present.
const DefaultEnvFile = ".env"

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Logging
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"json"`
	LogFile       string `env:"LOG_FILE"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"7"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// Request body size limit in bytes (default 64KiB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"65536"`

	// Directory with the static site. Empty disables static serving.
	StaticDir string `env:"STATIC_DIR"`

	// Contact relay (Web3Forms)
	Web3FormsAccessKey string `env:"WEB3FORMS_ACCESS_KEY"`
	Web3FormsURL       string `env:"WEB3FORMS_URL" envDefault:"https://api.web3forms.com/submit"`
	ContactSubject     string `env:"CONTACT_SUBJECT" envDefault:"New Contact Form Submission from Football News"`

	// Subscribe relay (Brevo)
	BrevoAPIKey string `env:"BREVO_API_KEY"`
	BrevoURL    string `env:"BREVO_URL" envDefault:"https://api.brevo.com/v3/contacts"`
	BrevoListID int64  `env:"BREVO_LIST_ID" envDefault:"8"`

	// Overall timeout for a single upstream call. Zero leaves it unbounded.
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"0s"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ContactEnabled reports whether the contact relay has a credential.
func (c *Config) ContactEnabled() bool {
	return c.Web3FormsAccessKey != ""
}

// SubscribeEnabled reports whether the subscribe relay has a credential.
func (c *Config) SubscribeEnabled() bool {
	return c.BrevoAPIKey != ""
}

// LogValue implements slog.LogValuer. Credentials are reported only as set/unset.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("env", c.AppEnv),
		slog.Int("port", c.AppPort),
		slog.String("log_level", c.LogLevel),
		slog.String("log_format", c.LogFormat),
		slog.String("static_dir", c.StaticDir),
		slog.Bool("contact_enabled", c.ContactEnabled()),
		slog.Bool("subscribe_enabled", c.SubscribeEnabled()),
		slog.Int64("brevo_list_id", c.BrevoListID),
		slog.Duration("upstream_timeout", c.UpstreamTimeout),
	)
}

// Load reads DefaultEnvFile if it exists, then parses environment variables.
// Variables already present in the process environment win over the file.
func Load() (*Config, error) {
	return LoadFile(DefaultEnvFile)
}

// LoadFile is Load with an explicit dotenv path. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.BrevoListID <= 0 {
		return nil, fmt.Errorf("BREVO_LIST_ID must be positive, got %d", cfg.BrevoListID)
	}
	return cfg, nil
}
