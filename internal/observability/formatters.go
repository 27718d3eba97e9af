// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintAnalysis prints every section of an analysis result.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}
	p.PrintScores(result)
	p.PrintSkills(result)
	p.PrintGaps(result)
	p.PrintRecommendations(result.Recommendations)
}

// PrintScores outputs the overall score and the per-category breakdown.
func (p *Printer) PrintScores(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:     %.1f (%s)\n", result.OverallScore, result.ScoreCategory))
	sb.WriteString(fmt.Sprintf("Similarity:  %.1f\n", result.ContentSimilarity))
	sb.WriteString("\n")

	c := result.CategoryScores
	sb.WriteString(fmt.Sprintf("Technical:   %s %5.1f\n", bar(c.Technical), c.Technical))
	sb.WriteString(fmt.Sprintf("Soft skills: %s %5.1f\n", bar(c.SoftSkills), c.SoftSkills))
	sb.WriteString(fmt.Sprintf("Experience:  %s %5.1f\n", bar(c.Experience), c.Experience))
	sb.WriteString(fmt.Sprintf("Education:   %s %5.1f\n", bar(c.Education), c.Education))
	sb.WriteString(fmt.Sprintf("ATS:         %s %5.1f", bar(c.ATSCompatibility), c.ATSCompatibility))

	if result.Partial {
		sb.WriteString("\n\n⚠ partial result")
		for _, w := range result.Warnings {
			sb.WriteString(fmt.Sprintf("\n  %s", w))
		}
	}

	p.printBox("MATCH SCORE", sb.String())
}

// bar renders a 0-100 percentage as a 20-cell gauge
func bar(pct float64) string {
	filled := int(pct / 5)
	filled = max(0, min(filled, 20))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", 20-filled) + "]"
}

// PrintSkills outputs matched and missing skills.
func (p *Printer) PrintSkills(result *types.AnalysisResult) {
	if result == nil || len(result.MatchedSkills)+len(result.MissingSkills) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Matched %d of %d required skills\n",
		len(result.MatchedSkills), len(result.MatchedSkills)+len(result.MissingSkills)))

	if len(result.MatchedSkills) > 0 {
		sb.WriteString("\nMatched:\n")
		count := min(len(result.MatchedSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			m := result.MatchedSkills[i]
			sb.WriteString(fmt.Sprintf("  ✓ %s", m.Skill))
			switch m.Kind {
			case types.MatchSynonym:
				sb.WriteString(fmt.Sprintf(" (as %s)", m.MatchedAs))
			case types.MatchApproximate:
				sb.WriteString(fmt.Sprintf(" (~%s, %.0f%%)", m.MatchedAs, m.Similarity))
			}
			sb.WriteString("\n")
		}
		if len(result.MatchedSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.MatchedSkills)-maxItemsToShow))
		}
	}

	if len(result.MissingSkills) > 0 {
		sb.WriteString("\nMissing:\n")
		count := min(len(result.MissingSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			m := result.MissingSkills[i]
			sb.WriteString(fmt.Sprintf("  ✗ %s [%s]\n", m.Skill, m.Category))
		}
		if len(result.MissingSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.MissingSkills)-maxItemsToShow))
		}
	}

	p.printBox("SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGaps outputs skill gaps and strength areas.
func (p *Printer) PrintGaps(result *types.AnalysisResult) {
	if result == nil || len(result.SkillGaps)+len(result.StrengthAreas) == 0 {
		return
	}

	var sb strings.Builder
	if len(result.SkillGaps) > 0 {
		sb.WriteString("Gaps:\n")
		for _, g := range result.SkillGaps {
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", g.Skill, g.Priority))
		}
	}
	if len(result.StrengthAreas) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Strengths:\n")
		for _, s := range result.StrengthAreas {
			sb.WriteString(fmt.Sprintf("  • %s ×%d (%s)\n", s.Skill, s.Frequency, s.StrengthLevel))
		}
	}

	p.printBox("GAPS AND STRENGTHS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the recommendations in priority order.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO RECOMMENDATIONS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	for i, r := range recs {
		sb.WriteString(fmt.Sprintf("[%s] %s\n", strings.ToUpper(r.Priority), r.Title))
		sb.WriteString(fmt.Sprintf("  %s", r.Action))
		if i < len(recs)-1 {
			sb.WriteString("\n\n")
		}
	}

	p.printBox("RECOMMENDATIONS", sb.String())
}
