package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const dateLayout = "2006-01-02"

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("Error: invalid environment configuration: %s", err)
	}
	return cfg
}

// Parse builds a Config from the current environment without touching .env files.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if err := cfg.ValidateToday(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ValidateToday checks that Today is empty or a YYYY-MM-DD date.
func (c Config) ValidateToday() error {
	if c.Today == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, c.Today); err != nil {
		return fmt.Errorf("TODAY must be YYYY-MM-DD: %w", err)
	}
	return nil
}

// TodayOr returns the configured reference date, or now when none is set.
func (c Config) TodayOr(now time.Time) time.Time {
	if c.Today == "" {
		return now
	}
	t, err := time.Parse(dateLayout, c.Today)
	if err != nil {
		return now
	}
	return t
}

// ApplyLogging configures the package-level logger from the config.
func (c Config) ApplyLogging() {
	if c.LogFormat == "json" {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
	if level, err := log.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(level)
	}
}
