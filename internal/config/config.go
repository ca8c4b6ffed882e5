// Package config loads scraper configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all scraper configuration.
type Config struct {
	Source  SourceConfig
	HTTP    HTTPConfig
	Workers WorkerConfig
	Output  OutputConfig
	Logging LogConfig
}

// SourceConfig holds the reference-site entry points.
type SourceConfig struct {
	IndexURL string `envconfig:"INDEX_URL" default:"https://www.d20pfsrd.com/bestiary/bestiary-hub/monsters-by-cr/"`
	FeatsURL string `envconfig:"FEATS_URL" default:"https://www.d20pfsrd.com/feats/"`
}

// HTTPConfig holds fetch behavior.
type HTTPConfig struct {
	Timeout           time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	MaxRetries        int           `envconfig:"HTTP_MAX_RETRIES" default:"3"`
	RequestsPerSecond float64       `envconfig:"HTTP_RPS" default:"10"`
}

// WorkerConfig holds worker-pool sizing.
type WorkerConfig struct {
	Max int `envconfig:"MAX_WORKERS" default:"30"`
}

// OutputConfig holds dataset output settings.
type OutputConfig struct {
	Path string `envconfig:"OUTPUT_PATH" default:"monsters.csv"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("SCRAPER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			IndexURL: "https://www.d20pfsrd.com/bestiary/bestiary-hub/monsters-by-cr/",
			FeatsURL: "https://www.d20pfsrd.com/feats/",
		},
		HTTP: HTTPConfig{
			Timeout:           30 * time.Second,
			MaxRetries:        3,
			RequestsPerSecond: 10,
		},
		Workers: WorkerConfig{Max: 30},
		Output:  OutputConfig{Path: "monsters.csv"},
		Logging: LogConfig{Level: "info"},
	}
}
