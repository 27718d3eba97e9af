package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/spf13/cobra"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Inspect the skill taxonomy",
}

var taxonomyCanonicalizeCmd = &cobra.Command{
	Use:   "canonicalize <term>...",
	Short: "Print the canonical skill name of each term",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaxonomyCanonicalize,
}

var taxonomyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List taxonomy entries",
	RunE:  runTaxonomyList,
}

var (
	taxonomyCategory string
	taxonomyJSON     bool
	taxonomyAliases  bool
)

func init() {
	taxonomyCanonicalizeCmd.Flags().BoolVar(&taxonomyAliases, "aliases", false, "Also print the aliases of each canonical name")
	taxonomyListCmd.Flags().StringVar(&taxonomyCategory, "category", "", "Only list this category (technical, soft, ...)")
	taxonomyListCmd.Flags().BoolVar(&taxonomyJSON, "json", false, "Print entries as JSON")

	taxonomyCmd.AddCommand(taxonomyCanonicalizeCmd, taxonomyListCmd)
	rootCmd.AddCommand(taxonomyCmd)
}

func loadTaxonomy() (*taxonomy.Taxonomy, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	if cfg.TaxonomyPath == "" {
		return taxonomy.Default(), nil
	}
	return taxonomy.Load(cfg.TaxonomyPath)
}

func runTaxonomyCanonicalize(cmd *cobra.Command, args []string) error {
	tax, err := loadTaxonomy()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, term := range args {
		canonical := tax.Canonicalize(term)
		category, _ := tax.Category(term)

		kind := "unknown"
		switch {
		case tax.IsCanonical(term):
			kind = "canonical"
		case tax.Known(term):
			kind = "alias"
		}
		if kind == "unknown" {
			category = "-"
		}

		line := fmt.Sprintf("%s\t%s\t%s\t%s", term, canonical, category, kind)
		if taxonomyAliases && kind != "unknown" {
			line += "\t" + strings.Join(tax.Aliases(canonical), ", ")
		}
		_, _ = fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}

func runTaxonomyList(cmd *cobra.Command, _ []string) error {
	tax, err := loadTaxonomy()
	if err != nil {
		return err
	}

	var entries []taxonomy.Entry
	for _, e := range tax.Entries() {
		if taxonomyCategory != "" && e.Category != types.SkillCategory(taxonomyCategory) {
			continue
		}
		entries = append(entries, e)
	}

	if taxonomyJSON {
		return writeJSON(cmd.OutOrStdout(), "", entries)
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Canonical, e.Category, strings.Join(e.Aliases, ", "))
	}
	return tw.Flush()
}
