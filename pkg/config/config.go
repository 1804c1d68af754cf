package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for talenthunt-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8089"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Scoring service configuration
	Scoring ScoringConfig `yaml:"scoring"`

	// Upload signing configuration
	Upload UploadConfig `yaml:"upload"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"talenthunt"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"talenthunt"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MigrationsPath string `yaml:"migrations_path" env:"PGMIGRATIONS_PATH" env-default:"migrations"`
}

// ScoringConfig holds settings for the external resume-scoring service.
type ScoringConfig struct {
	// BaseURL is the root URL of the scoring service.
	BaseURL string `yaml:"base_url" env:"SCORING_BASE_URL" env-default:"https://hrtick-production.up.railway.app"`
	// TimeoutSeconds bounds each outbound call. Scoring calls run a full
	// resume through an LLM, so the default is generous.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"SCORING_TIMEOUT_SECONDS" env-default:"120"`
}

// UploadConfig holds settings for signed resume-upload URLs.
type UploadConfig struct {
	// BaseURL is the public root under which uploaded objects live.
	BaseURL string `yaml:"base_url" env:"UPLOAD_BASE_URL" env-default:"http://localhost:8089/storage"`
	// SigningKey signs upload tokens. Secret - env only.
	SigningKey string `yaml:"-" env:"UPLOAD_SIGNING_KEY"`
	// TokenTTLSeconds is how long a signed upload URL stays valid.
	TokenTTLSeconds int `yaml:"token_ttl_seconds" env:"UPLOAD_TOKEN_TTL_SECONDS" env-default:"3600"`
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
