package extraction

import (
	"regexp"

	"github.com/jonathan/resume-matcher/internal/types"
)

// educationPatterns is ordered from highest to lowest rank
var educationPatterns = []struct {
	level   types.EducationLevel
	pattern *regexp.Regexp
}{
	{types.EducationDoctorate, regexp.MustCompile(`\bph\.?\s?d\b|\bdoctorate\b|\bdoctoral\b`)},
	{types.EducationMaster, regexp.MustCompile(`\bmaster'?s\b|\bmaster of\b|\bmsc\b|\bm\.s\.|\bmba\b`)},
	{types.EducationBachelor, regexp.MustCompile(`\bbachelor'?s?\b|\bbsc\b|\bb\.s\.|\bb\.a\.|\bundergraduate degree\b`)},
	{types.EducationCertification, regexp.MustCompile(`\bcertified\b|\bcertifications?\b|\bcertificates?\b`)},
}

// EducationLevelOf returns the highest education level mentioned in
// raw-lowercased text.
func EducationLevelOf(raw string) types.EducationLevel {
	for _, p := range educationPatterns {
		if p.pattern.MatchString(raw) {
			return p.level
		}
	}
	return types.EducationNone
}
