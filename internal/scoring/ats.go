package scoring

import "github.com/jonathan/resume-matcher/internal/types"

// ATS heuristic thresholds
const (
	atsBaseline           = 100.0
	atsMinWords           = 200
	atsMaxWords           = 1000
	atsShortPenalty       = 10.0
	atsLongPenalty        = 5.0
	atsLowCoverage        = 40.0
	atsMidCoverage        = 60.0
	atsLowCoveragePenalty = 20.0
	atsMidCoveragePenalty = 10.0
)

// KeywordDensity measures how the job's required keywords show up in the
// resume. Coverage is the percentage of required keywords matched; density
// is resume occurrences of matched keywords per 100 resume words.
func KeywordDensity(matches []types.SkillMatch, resumeWords int) types.KeywordDensity {
	kd := types.KeywordDensity{
		TotalWords:       resumeWords,
		RequiredKeywords: len(matches),
	}
	counted := make(map[string]bool)
	for _, m := range matches {
		if !m.Matched() {
			continue
		}
		kd.MatchedKeywords++
		if counted[m.MatchedAs] {
			continue
		}
		counted[m.MatchedAs] = true
		kd.KeywordCount += m.ResumeFrequency
	}
	if kd.RequiredKeywords > 0 {
		kd.Coverage = Round(float64(kd.MatchedKeywords)/float64(kd.RequiredKeywords)*100, 1)
	}
	if resumeWords > 0 {
		kd.Density = Round(float64(kd.KeywordCount)/float64(resumeWords)*100, 2)
	}
	return kd
}

// ATSCompatibility estimates how well a resume survives keyword screening.
// It starts from a baseline and is penalized for length outside the
// expected range and for low keyword coverage. A job with no required
// keywords does not incur a coverage penalty.
func ATSCompatibility(resumeWords int, density types.KeywordDensity) float64 {
	score := atsBaseline
	switch {
	case resumeWords < atsMinWords:
		score -= atsShortPenalty
	case resumeWords > atsMaxWords:
		score -= atsLongPenalty
	}
	if density.RequiredKeywords > 0 {
		switch {
		case density.Coverage < atsLowCoverage:
			score -= atsLowCoveragePenalty
		case density.Coverage < atsMidCoverage:
			score -= atsMidCoveragePenalty
		}
	}
	return Clamp(score)
}
