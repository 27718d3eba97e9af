package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [result.json]",
	Short: "Validate analysis result JSON against the result schema",
	Long: `Validate an analysis result file (or stdin when the path is "-") against the
built-in result schema, or against another JSON Schema given with --schema.

With --print-schema the built-in schema is printed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var (
	validateSchema      string
	validatePrintSchema bool
)

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a JSON Schema file (default: built-in result schema)")
	validateCmd.Flags().BoolVar(&validatePrintSchema, "print-schema", false, "Print the built-in result schema and exit")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if validatePrintSchema {
		_, err := out.Write(schemas.AnalysisResultSchema())
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("a result file is required (use - for stdin)")
	}
	path := args[0]

	var err error
	switch {
	case path == "-":
		var data []byte
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		err = validateBytes(data)
	case validateSchema != "":
		err = schemas.ValidateJSON(validateSchema, path)
	default:
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		err = schemas.ValidateResultJSON(data)
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, "valid")
	return nil
}

func validateBytes(data []byte) error {
	if validateSchema == "" {
		return schemas.ValidateResultJSON(data)
	}
	schema, err := os.ReadFile(validateSchema)
	if err != nil {
		return fmt.Errorf("failed to read schema %s: %w", validateSchema, err)
	}
	return schemas.ValidateJSONString(string(schema), string(data))
}
