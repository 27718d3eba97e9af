package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Extract cleaned text from a resume or job description file",
	Long: `Extract and clean the text of a .txt, .md, .html, .pdf or .docx file, and
write it with a metadata file (<name>.txt and <name>.meta.json) to the output
directory. This is the text the analyze command scores.`,
	RunE: runIngest,
}

var (
	ingestInput  string
	ingestOutDir string
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestInput, "in", "i", "", "Path to the input document (required)")
	ingestCmd.Flags().StringVarP(&ingestOutDir, "out", "o", "", "Output directory (required)")

	if err := ingestCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := ingestCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	text, metadata, err := ingestion.IngestFromFile(ingestInput)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text could be extracted from %s", ingestInput)
	}

	if err := os.MkdirAll(ingestOutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", ingestOutDir, err)
	}

	name := titleOrFileName("", ingestInput)
	textPath := filepath.Join(ingestOutDir, name+".txt")
	if err := os.WriteFile(textPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write text file: %w", err)
	}

	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return err
	}
	metaPath := filepath.Join(ingestOutDir, name+".meta.json")
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Text: %s (%d words)\n", textPath, metadata.Words)
	_, _ = fmt.Fprintf(out, "Metadata: %s\n", metaPath)
	return nil
}
