package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-matcher/internal/analysis"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze many resume and job description pairs",
	Long: `Analyze every pair listed in a JSON manifest in parallel. Results are
written in manifest order; a failing pair is reported without stopping the
others.

Each manifest entry provides the resume and job description either inline
("resume", "job_description") or as files ("resume_file", "job_file").
Relative file paths are resolved against the manifest's directory.`,
	RunE: runBatch,
}

var (
	batchManifest    string
	batchOutput      string
	batchConcurrency int
)

func init() {
	batchCmd.Flags().StringVarP(&batchManifest, "manifest", "m", "", "Path to the JSON manifest (required)")
	batchCmd.Flags().StringVarP(&batchOutput, "out", "o", "", "Write results to this file instead of stdout")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Maximum parallel analyses (default from config)")

	if err := batchCmd.MarkFlagRequired("manifest"); err != nil {
		panic(fmt.Sprintf("failed to mark manifest flag as required: %v", err))
	}

	rootCmd.AddCommand(batchCmd)
}

// manifestEntry is one pair in a batch manifest
type manifestEntry struct {
	ID         string `json:"id,omitempty"`
	Resume     string `json:"resume,omitempty"`
	Job        string `json:"job_description,omitempty"`
	ResumeFile string `json:"resume_file,omitempty"`
	JobFile    string `json:"job_file,omitempty"`
}

// batchItem is one line of batch output
type batchItem struct {
	ID     string                `json:"id"`
	Result *types.AnalysisResult `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// loadManifest reads the manifest and resolves file references to text.
// Entries without an id are numbered by position.
func loadManifest(path string) ([]analysis.Pair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	var entries []manifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	pairs := make([]analysis.Pair, 0, len(entries))
	for i, e := range entries {
		id := e.ID
		if id == "" {
			id = fmt.Sprintf("%d", i+1)
		}
		resume, err := entryText(base, e.Resume, e.ResumeFile)
		if err != nil {
			return nil, fmt.Errorf("entry %s: resume: %w", id, err)
		}
		job, err := entryText(base, e.Job, e.JobFile)
		if err != nil {
			return nil, fmt.Errorf("entry %s: job description: %w", id, err)
		}
		pairs = append(pairs, analysis.Pair{ID: id, Resume: resume, Job: job})
	}
	return pairs, nil
}

func entryText(base, inline, file string) (string, error) {
	if file == "" {
		return inline, nil
	}
	if inline != "" {
		return "", fmt.Errorf("both inline text and a file are set")
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(base, file)
	}
	text, _, err := ingestion.IngestFromFile(file)
	return text, err
}

func runBatch(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pairs, err := loadManifest(batchManifest)
	if err != nil {
		return err
	}

	engine, err := newEngine(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = cfg.BatchConcurrency
	}
	results, err := engine.AnalyzeBatch(ctx, pairs, concurrency)
	if err != nil {
		return fmt.Errorf("batch cancelled: %w", err)
	}

	items := make([]batchItem, len(results))
	failed := 0
	for i, r := range results {
		items[i] = batchItem{ID: r.ID, Result: r.Result}
		if r.Err != nil {
			items[i].Error = r.Err.Error()
			failed++
			logger.Warn("pair failed", "id", r.ID, "error", r.Err)
		}
	}

	if err := writeJSON(cmd.OutOrStdout(), batchOutput, items); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Analyzed %d pairs (%d failed)\n", len(items), failed)
	return nil
}
