package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func sampleResult() *types.AnalysisResult {
	return &types.AnalysisResult{
		OverallScore:      72.3,
		ContentSimilarity: 41.5,
		ScoreCategory:     "good",
		CategoryScores: types.CategoryScores{
			Technical:        100,
			SoftSkills:       0,
			Experience:       100,
			Education:        100,
			ATSCompatibility: 85,
		},
		MatchedSkills: []types.SkillMatch{
			{Skill: "python", Kind: types.MatchExact, Category: types.CategoryTechnical},
			{Skill: "kubernetes", MatchedAs: "k8s", Kind: types.MatchSynonym, Category: types.CategoryTechnical},
			{Skill: "postgresql", MatchedAs: "postgres", Kind: types.MatchApproximate, Similarity: 88, Category: types.CategoryTechnical},
		},
		MissingSkills: []types.SkillMatch{
			{Skill: "leadership", Kind: types.MatchMissing, Category: types.CategorySoft},
		},
		SkillGaps: []types.SkillGap{
			{Skill: "leadership", Priority: "high"},
		},
		StrengthAreas: []types.StrengthArea{
			{Skill: "python", Frequency: 4, StrengthLevel: "high"},
		},
		Recommendations: []types.Recommendation{
			{Priority: types.PriorityHigh, Title: "Add missing skills", Action: "Mention leadership"},
		},
	}
}

func TestPrintScores(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScores(sampleResult())
	output := buf.String()

	assert.Contains(t, output, "MATCH SCORE")
	assert.Contains(t, output, "72.3 (good)")
	assert.Contains(t, output, "[####################] 100.0")
	assert.Contains(t, output, "[....................]   0.0")
	assert.NotContains(t, output, "partial")
}

func TestPrintScores_Partial(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	r := sampleResult()
	r.Partial = true
	r.Warnings = []string{"similarity unavailable"}
	p.PrintScores(r)

	assert.Contains(t, buf.String(), "partial result")
	assert.Contains(t, buf.String(), "similarity unavailable")
}

func TestPrintSkills(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSkills(sampleResult())
	output := buf.String()

	assert.Contains(t, output, "Matched 3 of 4 required skills")
	assert.Contains(t, output, "✓ python ")
	assert.Contains(t, output, "kubernetes (as k8s)")
	assert.Contains(t, output, "postgresql (~postgres, 88%)")
	assert.Contains(t, output, "✗ leadership [soft]")
}

func TestPrintSkills_Truncation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	r := &types.AnalysisResult{}
	for _, s := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		r.MissingSkills = append(r.MissingSkills, types.SkillMatch{Skill: s, Kind: types.MatchMissing})
	}
	p.PrintSkills(r)

	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintGaps(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGaps(sampleResult())
	output := buf.String()

	assert.Contains(t, output, "GAPS AND STRENGTHS")
	assert.Contains(t, output, "leadership (high)")
	assert.Contains(t, output, "python ×4 (high)")
}

func TestPrintRecommendations_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecommendations(nil)

	assert.Contains(t, buf.String(), "NO RECOMMENDATIONS")
}

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(sampleResult())
	output := buf.String()

	for _, title := range []string{"MATCH SCORE", "SKILLS", "GAPS AND STRENGTHS", "RECOMMENDATIONS"} {
		assert.Contains(t, output, title)
	}
	assert.Contains(t, output, "[HIGH] Add missing skills")
}

func TestPrintAnalysis_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(nil)
	p.PrintSkills(nil)
	p.PrintGaps(&types.AnalysisResult{})

	assert.Empty(t, buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	assert.Contains(t, buf.String(), "...")
	assert.NotContains(t, buf.String(), strings.Repeat("x", 57))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "[##########..........]", bar(50))
	assert.Equal(t, "[....................]", bar(-3))
	assert.Equal(t, "[####################]", bar(140))
}
