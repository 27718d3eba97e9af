// Package config provides configuration loading and validation for the CLI and services.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-matcher/internal/analysis"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/scoring"
)

// Default service settings
const (
	DefaultPort      = 8080
	DefaultCacheTTL  = 24 * time.Hour
	DefaultQueueName = "resume_analysis"
	DefaultS3Region  = "auto"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment
// variables or CLI flags.
type Config struct {
	// Engine tuning
	TaxonomyPath         string           `json:"taxonomy_path,omitempty"`         // Path to a taxonomy JSON file (built-in when empty)
	Lemmatize            bool             `json:"lemmatize,omitempty"`             // Stem tokens before computing similarity
	Weights              *scoring.Weights `json:"weights,omitempty"`               // Aggregation weights, must sum to 1.0
	ApproximateCredit    float64          `json:"approximate_credit,omitempty"`    // Credit for approximate matches (0.0-1.0)
	ApproximateThreshold float64          `json:"approximate_threshold,omitempty"` // Similarity ratio an approximate match must exceed (0-100)
	MaxRecommendations   int              `json:"max_recommendations,omitempty"`
	BatchConcurrency     int              `json:"batch_concurrency,omitempty"`

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	SQLitePath  string `json:"sqlite_path,omitempty"`  // Local history database, used when no database_url is set
	RedisURL    string `json:"redis_url,omitempty"`    // Result cache
	CacheTTL    string `json:"cache_ttl,omitempty"`    // Go duration, e.g. "12h"
	S3Bucket    string `json:"s3_bucket,omitempty"`    // Bucket holding document texts
	S3Endpoint  string `json:"s3_endpoint,omitempty"`  // Custom endpoint for S3-compatible stores
	S3Region    string `json:"s3_region,omitempty"`

	// Queue
	AMQPURL   string `json:"amqp_url,omitempty"`
	QueueName string `json:"queue_name,omitempty"`

	// Server
	Port    int  `json:"port,omitempty"`
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Weights != nil {
		if err := c.Weights.Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if c.ApproximateCredit < 0 || c.ApproximateCredit > 1 {
		return fmt.Errorf("config error: 'approximate_credit' must be within [0,1]")
	}
	if c.ApproximateThreshold < 0 || c.ApproximateThreshold > 100 {
		return fmt.Errorf("config error: 'approximate_threshold' must be within [0,100]")
	}
	if c.MaxRecommendations < 0 {
		return fmt.Errorf("config error: 'max_recommendations' must be non-negative")
	}
	if c.BatchConcurrency < 0 {
		return fmt.Errorf("config error: 'batch_concurrency' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid TCP port")
	}
	if c.CacheTTL != "" {
		if _, err := time.ParseDuration(c.CacheTTL); err != nil {
			return fmt.Errorf("config error: invalid 'cache_ttl': %w", err)
		}
	}

	if c.TaxonomyPath != "" {
		if _, err := os.Stat(c.TaxonomyPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: taxonomy file not found: %s", c.TaxonomyPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&result.TaxonomyPath, defaults.TaxonomyPath},
		{&result.DatabaseURL, defaults.DatabaseURL},
		{&result.SQLitePath, defaults.SQLitePath},
		{&result.RedisURL, defaults.RedisURL},
		{&result.CacheTTL, defaults.CacheTTL},
		{&result.S3Bucket, defaults.S3Bucket},
		{&result.S3Endpoint, defaults.S3Endpoint},
		{&result.S3Region, defaults.S3Region},
		{&result.AMQPURL, defaults.AMQPURL},
		{&result.QueueName, defaults.QueueName},
	} {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}

	// Numeric fields: use default if zero
	if result.Weights == nil && defaults.Weights != nil {
		w := *defaults.Weights
		result.Weights = &w
	}
	if result.ApproximateCredit == 0 {
		result.ApproximateCredit = defaults.ApproximateCredit
	}
	if result.ApproximateThreshold == 0 {
		result.ApproximateThreshold = defaults.ApproximateThreshold
	}
	if result.MaxRecommendations == 0 {
		result.MaxRecommendations = defaults.MaxRecommendations
	}
	if result.BatchConcurrency == 0 {
		result.BatchConcurrency = defaults.BatchConcurrency
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// EngineOptions converts the engine tuning into analysis options,
// falling back to defaults for unset values.
func (c *Config) EngineOptions() analysis.Options {
	opts := analysis.DefaultOptions()
	opts.Lemmatize = c.Lemmatize
	if c.Weights != nil {
		opts.Weights = *c.Weights
	}
	if c.ApproximateCredit > 0 {
		opts.ApproximateCredit = c.ApproximateCredit
	}
	if c.ApproximateThreshold > 0 {
		opts.Matcher.ApproximateThreshold = c.ApproximateThreshold
	} else {
		opts.Matcher.ApproximateThreshold = matching.DefaultApproximateThreshold
	}
	if c.MaxRecommendations > 0 {
		opts.Recommend.MaxRecommendations = c.MaxRecommendations
	}
	return opts
}

// CacheTTLDuration returns the parsed cache TTL, or DefaultCacheTTL.
func (c *Config) CacheTTLDuration() time.Duration {
	if d, err := time.ParseDuration(c.CacheTTL); err == nil && d > 0 {
		return d
	}
	return DefaultCacheTTL
}
