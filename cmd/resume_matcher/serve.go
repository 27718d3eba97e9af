package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-matcher/internal/cache"
	"github.com/jonathan/resume-matcher/internal/server"
	"github.com/jonathan/resume-matcher/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort     int
	serveValidate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for analyzing resumes,
storing documents and browsing the analysis history.

History endpoints need DATABASE_URL or SQLITE_PATH. Results are cached in
memory and, when REDIS_URL is set, in Redis.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config or PORT)")
	serveCmd.Flags().BoolVar(&serveValidate, "validate", false, "Validate every result against the result schema")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := newEngine(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	} else {
		logger.Warn("no store configured, history endpoints are disabled")
	}

	lookup, err := newLookup(ctx, cfg, store, logger)
	if err != nil {
		return fmt.Errorf("failed to create document lookup: %w", err)
	}

	resultCache := cache.New(ctx, cache.Options{
		RedisURL: cfg.RedisURL,
		TTL:      cfg.CacheTTLDuration(),
	}, logger)
	defer func() { _ = resultCache.Close() }()

	srv, err := server.New(server.Config{
		Port:            cfg.Port,
		RateLimit:       ratelimit.LoadConfig(),
		CacheVariant:    engineVariant(cfg),
		ValidateResults: serveValidate,
	}, server.Dependencies{
		Engine: engine,
		Store:  store,
		Lookup: lookup,
		Cache:  resultCache,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
