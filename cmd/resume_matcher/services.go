package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-matcher/internal/analysis"
	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/storage"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
)

// resolveConfig layers the config file over environment defaults
func resolveConfig() (config.Config, error) {
	env := config.FromEnv()

	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(env)
	cfg.Lemmatize = cfg.Lemmatize || env.Lemmatize
	cfg.Verbose = cfg.Verbose || verbose

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newEngine(cfg config.Config, logger *slog.Logger) (*analysis.Engine, error) {
	tax := taxonomy.Default()
	if cfg.TaxonomyPath != "" {
		loaded, err := taxonomy.Load(cfg.TaxonomyPath)
		if err != nil {
			return nil, err
		}
		tax = loaded
	}
	return analysis.New(tax, cfg.EngineOptions(), logger)
}

// engineVariant identifies the engine configuration in cache keys
func engineVariant(cfg config.Config) string {
	opts, err := json.Marshal(cfg.EngineOptions())
	if err != nil {
		return cfg.TaxonomyPath
	}
	return cfg.TaxonomyPath + string(opts)
}

// openStore connects to Postgres when a database URL is configured, else
// opens the SQLite history file. It returns nil when neither is set.
func openStore(ctx context.Context, cfg config.Config) (db.Store, error) {
	switch {
	case cfg.DatabaseURL != "":
		pg, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			_ = pg.Close()
			return nil, err
		}
		return pg, nil
	case cfg.SQLitePath != "":
		lite, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return lite, nil
	default:
		return nil, nil
	}
}

// requireStore is openStore for commands that cannot run without history
func requireStore(ctx context.Context, cfg config.Config) (db.Store, error) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("a store is required (set DATABASE_URL or SQLITE_PATH, or use --config)")
	}
	return store, nil
}

// newLookup prefers the object storage bucket and falls back to the store
func newLookup(ctx context.Context, cfg config.Config, store db.Store, logger *slog.Logger) (analysis.DocumentLookup, error) {
	if cfg.S3Bucket != "" {
		bucket, err := storage.New(ctx, storage.Options{
			Bucket:    cfg.S3Bucket,
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: os.Getenv("S3_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			Prefix:    os.Getenv("S3_PREFIX"),
		}, logger)
		if err != nil {
			return nil, err
		}
		return bucket, nil
	}
	if store != nil {
		return store, nil
	}
	return nil, nil
}

// writeJSON writes v as indented JSON to path, or to w when path is empty
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = w.Write(data)
		return err
	}

	// Ensure output directory exists
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
