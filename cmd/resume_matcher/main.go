// Package main provides the entry point for the resume matcher CLI and services.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "resume_matcher",
	Short: "Resume and job description matching engine",
	Long: `Resume Matcher scores how well a resume fits a job description, explains the
skill matches and gaps, and suggests improvements. It runs one-off analyses,
batches, an HTTP API and a queue worker.

Configuration can be loaded from a JSON file using --config. Environment
variables fill values the file leaves empty; command-line flags win over both.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
