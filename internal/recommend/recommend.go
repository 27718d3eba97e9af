// Package recommend turns skill gaps and weak categories into a ranked list
// of suggestions for the candidate.
package recommend

import (
	"fmt"
	"sort"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Generator tuning defaults
const (
	DefaultMaxRecommendations = 12
	DefaultMinImportance      = 0.3
	DefaultMaxSkillGaps       = 5
	DefaultMaxAmplify         = 4

	criticalImportance = 0.8
	highImportance     = 0.6

	gapImportance     = 0.7
	maxGaps           = 5
	strengthFrequency = 2
	highStrength      = 4
	maxStrengths      = 5

	atsWeak = 70.0
)

// Recommendation types
const (
	TypeSkillGap         = "skill_gap"
	TypeSkillEnhancement = "skill_enhancement"
	TypeExperience       = "experience"
	TypeEducation        = "education"
	TypeFormatting       = "formatting"
	TypeKeywords         = "keyword_optimization"
	TypeContent          = "content_enhancement"
	TypeIndustry         = "industry_alignment"
)

// Options tunes the generator. Zero values fall back to the defaults.
type Options struct {
	MaxRecommendations int
	MinImportance      float64
	MaxSkillGaps       int
	MaxAmplify         int
}

// Input is what the generator needs from a finished analysis
type Input struct {
	Matches    []types.SkillMatch
	Scores     types.CategoryScores
	Experience types.ExperienceSummary
	Education  types.EducationSummary
	Density    types.KeywordDensity
}

// Generate builds recommendations ordered by priority, then by the order
// they were produced, truncated to MaxRecommendations.
func Generate(in Input, opts Options) []types.Recommendation {
	opts = withDefaults(opts)
	recs := make([]types.Recommendation, 0, opts.MaxRecommendations)

	for _, m := range importantMissing(in.Matches, opts.MinImportance, opts.MaxSkillGaps) {
		recs = append(recs, skillGapRecommendation(m))
	}

	for i, s := range StrengthAreas(in.Matches) {
		if i == opts.MaxAmplify {
			break
		}
		recs = append(recs, amplifyRecommendation(s))
	}

	recs = append(recs, categoryRecommendations(in)...)
	recs = append(recs, genericRecommendations()...)

	sort.SliceStable(recs, func(i, j int) bool {
		return priorityRank(recs[i].Priority) < priorityRank(recs[j].Priority)
	})
	if len(recs) > opts.MaxRecommendations {
		recs = recs[:opts.MaxRecommendations]
	}
	return recs
}

// SkillGaps lists the most important missing skills.
func SkillGaps(matches []types.SkillMatch) []types.SkillGap {
	gaps := []types.SkillGap{}
	for _, m := range importantMissing(matches, 0, 0) {
		if m.Importance <= gapImportance {
			continue
		}
		gaps = append(gaps, types.SkillGap{
			Skill:      m.Skill,
			Importance: m.Importance,
			Priority:   Priority(m.Importance),
			Suggestion: fmt.Sprintf("Consider adding %s to your resume", m.Skill),
		})
		if len(gaps) == maxGaps {
			break
		}
	}
	return gaps
}

// StrengthAreas lists matched skills the resume mentions repeatedly, most
// frequent first.
func StrengthAreas(matches []types.SkillMatch) []types.StrengthArea {
	strengths := []types.StrengthArea{}
	for _, m := range matches {
		if !m.Matched() || m.ResumeFrequency <= strengthFrequency {
			continue
		}
		level := "medium"
		if m.ResumeFrequency > highStrength {
			level = "high"
		}
		strengths = append(strengths, types.StrengthArea{
			Skill:         m.Skill,
			Frequency:     m.ResumeFrequency,
			StrengthLevel: level,
		})
	}
	sort.SliceStable(strengths, func(i, j int) bool {
		return strengths[i].Frequency > strengths[j].Frequency
	})
	if len(strengths) > maxStrengths {
		strengths = strengths[:maxStrengths]
	}
	return strengths
}

// Priority maps an importance in [0,1] to a priority tier.
func Priority(importance float64) string {
	switch {
	case importance > criticalImportance:
		return types.PriorityCritical
	case importance > highImportance:
		return types.PriorityHigh
	default:
		return types.PriorityMedium
	}
}

// importantMissing returns missing skills at or above minImportance, most
// important first. limit <= 0 means no limit.
func importantMissing(matches []types.SkillMatch, minImportance float64, limit int) []types.SkillMatch {
	var missing []types.SkillMatch
	for _, m := range matches {
		if !m.Matched() && m.Importance >= minImportance {
			missing = append(missing, m)
		}
	}
	sort.SliceStable(missing, func(i, j int) bool {
		return missing[i].Importance > missing[j].Importance
	})
	if limit > 0 && len(missing) > limit {
		missing = missing[:limit]
	}
	return missing
}

func priorityRank(priority string) int {
	switch priority {
	case types.PriorityCritical:
		return 0
	case types.PriorityHigh:
		return 1
	default:
		return 2
	}
}

func withDefaults(opts Options) Options {
	if opts.MaxRecommendations <= 0 {
		opts.MaxRecommendations = DefaultMaxRecommendations
	}
	if opts.MinImportance <= 0 {
		opts.MinImportance = DefaultMinImportance
	}
	if opts.MaxSkillGaps <= 0 {
		opts.MaxSkillGaps = DefaultMaxSkillGaps
	}
	if opts.MaxAmplify <= 0 {
		opts.MaxAmplify = DefaultMaxAmplify
	}
	return opts
}
