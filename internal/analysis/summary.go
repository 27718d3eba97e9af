package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

const summaryMissingSkills = 3

// summarize writes a one-paragraph overview of a result.
func summarize(r *types.AnalysisResult) string {
	var sb strings.Builder
	category := r.ScoreCategory
	if category != "" {
		category = strings.ToUpper(category[:1]) + category[1:]
	}
	fmt.Fprintf(&sb, "%s match (%.1f/100).", category, r.OverallScore)

	required := len(r.MatchedSkills) + len(r.MissingSkills)
	if required == 0 {
		sb.WriteString(" No recognizable skills were found in the job description; the score reflects content similarity, experience and education.")
		return sb.String()
	}
	fmt.Fprintf(&sb, " Your resume covers %d of %d required skills.", len(r.MatchedSkills), required)

	if len(r.MissingSkills) > 0 {
		missing := append([]types.SkillMatch(nil), r.MissingSkills...)
		sort.SliceStable(missing, func(i, j int) bool {
			return missing[i].Importance > missing[j].Importance
		})
		if len(missing) > summaryMissingSkills {
			missing = missing[:summaryMissingSkills]
		}
		names := make([]string, len(missing))
		for i, m := range missing {
			names[i] = m.Skill
		}
		fmt.Fprintf(&sb, " Most important missing: %s.", strings.Join(names, ", "))
	}
	return sb.String()
}
