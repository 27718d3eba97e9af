package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved analyses",
	Long:  "List, show and summarize analyses saved by analyze --save, the API server and the queue worker.",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved analyses, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <analysis-id>",
	Short: "Show one saved analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historySummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show dashboard totals",
	RunE:  runHistorySummary,
}

var (
	historyCategory string
	historyMinScore float64
	historyLimit    int
	historyJSON     bool
)

func init() {
	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "Print JSON instead of a table")
	historyListCmd.Flags().StringVar(&historyCategory, "category", "", "Only show this score category (excellent, good, fair, poor)")
	historyListCmd.Flags().Float64Var(&historyMinScore, "min-score", 0, "Only show analyses scoring at least this much")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximum number of analyses (default 50)")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historySummaryCmd)
	rootCmd.AddCommand(historyCmd)
}

// withStore opens the configured store for the duration of fn
func withStore(cmd *cobra.Command, fn func(ctx context.Context, store db.Store) error) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := requireStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return fn(ctx, store)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, store db.Store) error {
		summaries, err := store.ListAnalyses(ctx, db.AnalysisFilters{
			Category: historyCategory,
			MinScore: historyMinScore,
			Limit:    historyLimit,
		})
		if err != nil {
			return err
		}
		if historyJSON {
			return writeJSON(cmd.OutOrStdout(), "", summaries)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "ID\tSCORE\tCATEGORY\tRESUME\tJOB\tCREATED")
		for _, s := range summaries {
			_, _ = fmt.Fprintf(tw, "%s\t%.1f\t%s\t%s\t%s\t%s\n",
				s.ID, s.OverallScore, s.ScoreCategory, s.ResumeTitle, s.JobTitle,
				s.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return tw.Flush()
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, store db.Store) error {
		record, err := store.GetAnalysis(ctx, args[0])
		if err != nil {
			return err
		}
		if record == nil {
			return fmt.Errorf("analysis %s not found", args[0])
		}
		if historyJSON {
			return writeJSON(cmd.OutOrStdout(), "", record)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s vs %s (%s)\n",
			record.ResumeTitle, record.JobTitle, record.CreatedAt.Local().Format("2006-01-02 15:04"))
		observability.NewPrinter(cmd.OutOrStdout()).PrintAnalysis(record.Result)
		return nil
	})
}

func runHistorySummary(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, store db.Store) error {
		summary, err := store.DashboardSummary(ctx)
		if err != nil {
			return err
		}
		if historyJSON {
			return writeJSON(cmd.OutOrStdout(), "", summary)
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "Total analyses: %d\n", summary.TotalAnalyses)
		_, _ = fmt.Fprintf(out, "Average score:  %.1f\n", summary.AverageScore)
		if summary.LastScore != nil && summary.LastAnalysisAt != nil {
			_, _ = fmt.Fprintf(out, "Last score:     %.1f (%s)\n",
				*summary.LastScore, summary.LastAnalysisAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	})
}
