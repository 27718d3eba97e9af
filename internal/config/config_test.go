package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"database_url": "postgres://localhost/matcher",
		"weights": {"similarity": 0.2, "technical": 0.5, "soft": 0.1, "experience": 0.1, "education": 0.1},
		"approximate_credit": 0.5,
		"max_recommendations": 8,
		"port": 9090,
		"lemmatize": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres://localhost/matcher", cfg.DatabaseURL)
	require.NotNil(t, cfg.Weights)
	assert.Equal(t, 0.5, cfg.Weights.Technical)
	assert.Equal(t, 0.5, cfg.ApproximateCredit)
	assert.Equal(t, 8, cfg.MaxRecommendations)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Lemmatize)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	bad := scoring.Weights{Similarity: 0.5, Technical: 0.6}

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty config", Config{}, ""},
		{"weights must sum to one", Config{Weights: &bad}, "must sum to 1.0"},
		{"credit out of range", Config{ApproximateCredit: 1.5}, "approximate_credit"},
		{"threshold out of range", Config{ApproximateThreshold: 120}, "approximate_threshold"},
		{"negative recommendations", Config{MaxRecommendations: -1}, "max_recommendations"},
		{"negative concurrency", Config{BatchConcurrency: -2}, "batch_concurrency"},
		{"bad port", Config{Port: 70000}, "port"},
		{"bad ttl", Config{CacheTTL: "soon"}, "cache_ttl"},
		{"missing taxonomy", Config{TaxonomyPath: "/nonexistent/taxonomy.json"}, "taxonomy file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		DatabaseURL:       "postgres://default",
		RedisURL:          "redis://default",
		QueueName:         DefaultQueueName,
		Port:              DefaultPort,
		ApproximateCredit: 0.7,
		Weights:           &scoring.Weights{Similarity: 1},
	}
	cfg := Config{DatabaseURL: "postgres://custom", Port: 9000}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "postgres://custom", merged.DatabaseURL)
	assert.Equal(t, "redis://default", merged.RedisURL)
	assert.Equal(t, DefaultQueueName, merged.QueueName)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, 0.7, merged.ApproximateCredit)
	require.NotNil(t, merged.Weights)
	assert.NotSame(t, defaults.Weights, merged.Weights)
	assert.Empty(t, cfg.RedisURL, "receiver is not modified")
}

func TestEngineOptions(t *testing.T) {
	opts := (&Config{}).EngineOptions()
	assert.Equal(t, scoring.DefaultWeights(), opts.Weights)
	assert.Equal(t, scoring.DefaultApproximateCredit, opts.ApproximateCredit)
	assert.False(t, opts.Lemmatize)

	w := scoring.Weights{Similarity: 0.5, Technical: 0.5}
	opts = (&Config{Weights: &w, ApproximateCredit: 0.5, ApproximateThreshold: 90, MaxRecommendations: 5, Lemmatize: true}).EngineOptions()
	assert.Equal(t, w, opts.Weights)
	assert.Equal(t, 0.5, opts.ApproximateCredit)
	assert.Equal(t, 90.0, opts.Matcher.ApproximateThreshold)
	assert.Equal(t, 5, opts.Recommend.MaxRecommendations)
	assert.True(t, opts.Lemmatize)
}

func TestCacheTTLDuration(t *testing.T) {
	assert.Equal(t, DefaultCacheTTL, (&Config{}).CacheTTLDuration())
	assert.Equal(t, 2*time.Hour, (&Config{CacheTTL: "2h"}).CacheTTLDuration())
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("PORT", "7000")
	t.Setenv("LEMMATIZE", "true")
	t.Setenv("QUEUE_NAME", "")

	cfg := FromEnv()
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, 7000, cfg.Port)
	assert.True(t, cfg.Lemmatize)
	assert.Equal(t, DefaultQueueName, cfg.QueueName)
}
