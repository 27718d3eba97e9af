package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	Long: `Analyze a resume file against a job description file and print the match
score, skill matches, gaps and recommendations.

Supported inputs are .txt, .md, .html, .pdf and .docx files.`,
	RunE: runAnalyze,
}

var (
	analyzeResume      string
	analyzeJob         string
	analyzeOutput      string
	analyzeJSON        bool
	analyzeValidate    bool
	analyzeSave        bool
	analyzeResumeTitle string
	analyzeJobTitle    string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to the resume file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to the job description file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Write the result JSON to this file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the result as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeValidate, "validate", false, "Validate the result against the result schema")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Save the result to the analysis history")
	analyzeCmd.Flags().StringVar(&analyzeResumeTitle, "resume-title", "", "Title stored with the saved analysis (defaults to the file name)")
	analyzeCmd.Flags().StringVar(&analyzeJobTitle, "job-title", "", "Title stored with the saved analysis (defaults to the file name)")

	if err := analyzeCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	if err := analyzeCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. Ingest both documents
	resumeText, resumeMeta, err := ingestion.IngestFromFile(analyzeResume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	jobText, jobMeta, err := ingestion.IngestFromFile(analyzeJob)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}
	logger.Debug("documents ingested",
		"resume_words", resumeMeta.Words, "resume_hash", resumeMeta.Hash,
		"job_words", jobMeta.Words, "job_hash", jobMeta.Hash)

	// 2. Analyze
	engine, err := newEngine(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	result, err := engine.Analyze(resumeText, jobText)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	// 3. Optionally save to history; this assigns the analysis id
	if analyzeSave {
		store, err := requireStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		record, err := store.SaveAnalysis(ctx, db.AnalysisInput{
			ResumeTitle: titleOrFileName(analyzeResumeTitle, analyzeResume),
			JobTitle:    titleOrFileName(analyzeJobTitle, analyzeJob),
			Result:      result,
		})
		if err != nil {
			return fmt.Errorf("failed to save analysis: %w", err)
		}
		logger.Info("analysis saved", "analysis_id", record.ID)
	}

	if analyzeValidate {
		if err := schemas.ValidateResult(result); err != nil {
			return fmt.Errorf("result failed schema validation: %w", err)
		}
	}

	// 4. Output
	out := cmd.OutOrStdout()
	if analyzeJSON || analyzeOutput != "" {
		if err := writeJSON(out, analyzeOutput, result); err != nil {
			return err
		}
		if analyzeOutput != "" {
			_, _ = fmt.Fprintf(out, "Wrote analysis to %s\n", analyzeOutput)
		}
		return nil
	}

	if cfg.Verbose {
		observability.NewPrinter(out).PrintAnalysis(result)
		return nil
	}
	printer := observability.NewPrinter(out)
	printer.PrintScores(result)
	printer.PrintRecommendations(result.Recommendations)
	return nil
}

func titleOrFileName(title, path string) string {
	if strings.TrimSpace(title) != "" {
		return title
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
