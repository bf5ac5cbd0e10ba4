// Package config provides configuration management for the directory tools.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendMongo = "mongo"
	BackendFile  = "file"
	BackendHTTP  = "http"
)

// Configuration validation errors.
var (
	ErrInvalidBackend           = errors.New("store.backend must be one of: mongo, file, http")
	ErrMissingURI               = errors.New("store.uri is required for the mongo backend")
	ErrMissingDatabase          = errors.New("store.database is required for the mongo backend")
	ErrMissingFixturePath       = errors.New("store.fixture_path is required for the file backend")
	ErrMissingEndpoint          = errors.New("store.endpoint is required for the http backend")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrInvalidRadius            = errors.New("search.default_radius_km must be non-negative")
	ErrInvalidMaxResults        = errors.New("search.max_results must be non-negative")
	ErrInvalidConcurrency       = errors.New("seed.concurrency must be at least 1")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat         = errors.New("logging.format must be 'text' or 'json'")
)

// Config represents the complete directory tool configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Search  SearchConfig  `yaml:"search"`
	Seed    SeedConfig    `yaml:"seed"`
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig selects and parameterizes the document store backend.
type StoreConfig struct {
	Backend            string      `yaml:"backend"`
	URI                string      `yaml:"uri"`
	Database           string      `yaml:"database"`
	SaintsCollection   string      `yaml:"saints_collection"`
	EventsCollection   string      `yaml:"events_collection"`
	ProfilesCollection string      `yaml:"profiles_collection"`
	FixturePath        string      `yaml:"fixture_path"`
	VerifyChecksum     bool        `yaml:"verify_checksum"`
	Endpoint           string      `yaml:"endpoint"`
	Retry              RetryPolicy `yaml:"retry"`
}

// SearchConfig holds the pipeline defaults applied when a flag is absent.
type SearchConfig struct {
	DefaultRadiusKm float64 `yaml:"default_radius_km"`
	MaxResults      int     `yaml:"max_results"`
}

// Radius returns the configured default radius, or +Inf when the radius
// is unset so that no distance filtering applies.
func (s *SearchConfig) Radius() float64 {
	if s.DefaultRadiusKm <= 0 {
		return math.Inf(1)
	}

	return s.DefaultRadiusKm
}

// SeedConfig controls the fixture seeding path.
type SeedConfig struct {
	Concurrency      int  `yaml:"concurrency"`
	AssignMissingIDs bool `yaml:"assign_missing_ids"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// RetryPolicy defines retry behavior for remote fetches.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// DefaultConfig returns a starter configuration for the file backend.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:            BackendFile,
			FixturePath:        "test/fixtures/directory.json",
			SaintsCollection:   "saints",
			EventsCollection:   "events",
			ProfilesCollection: "profiles",
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    500,
				MaxDelayMs:        5000,
				BackoffMultiplier: 2.0,
				TimeoutSec:        30,
			},
		},
		Search: SearchConfig{
			MaxResults: 50,
		},
		Seed: SeedConfig{
			Concurrency:      4,
			AssignMissingIDs: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from YAML file.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyDefaults fills the fields a minimal config may omit.
func (c *Config) applyDefaults() {
	if c.Store.SaintsCollection == "" {
		c.Store.SaintsCollection = "saints"
	}

	if c.Store.EventsCollection == "" {
		c.Store.EventsCollection = "events"
	}

	if c.Store.ProfilesCollection == "" {
		c.Store.ProfilesCollection = "profiles"
	}

	if c.Store.Retry.MaxAttempts == 0 {
		c.Store.Retry = DefaultConfig().Store.Retry
	}

	if c.Seed.Concurrency == 0 {
		c.Seed.Concurrency = 4
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMongo:
		if c.Store.URI == "" {
			return ErrMissingURI
		}

		if c.Store.Database == "" {
			return ErrMissingDatabase
		}
	case BackendFile:
		if c.Store.FixturePath == "" {
			return ErrMissingFixturePath
		}
	case BackendHTTP:
		if c.Store.Endpoint == "" {
			return ErrMissingEndpoint
		}
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidBackend, c.Store.Backend)
	}

	// Validate retry policy
	if c.Store.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Store.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Store.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Store.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	// Validate search defaults
	if c.Search.DefaultRadiusKm < 0 {
		return ErrInvalidRadius
	}

	if c.Search.MaxResults < 0 {
		return ErrInvalidMaxResults
	}

	if c.Seed.Concurrency < 1 {
		return ErrInvalidConcurrency
	}

	// Validate logging config
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Backend: %s, Database: %s, MaxAttempts: %d}",
		c.Store.Backend,
		c.Store.Database,
		c.Store.Retry.MaxAttempts,
	)
}
