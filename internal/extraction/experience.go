package extraction

import (
	"regexp"
	"strconv"
)

// Experience levels by years of experience
const (
	LevelEntry  = "entry"
	LevelJunior = "junior"
	LevelMid    = "mid"
	LevelSenior = "senior"
)

var yearsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2})\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(\d{1,2})\+?\s*years?\s+in\b`),
	regexp.MustCompile(`(\d{1,2})\+?\s*years?\s+of\b`),
	regexp.MustCompile(`experience\s+(?:of\s+)?(\d{1,2})\+?\s*years?`),
}

// YearsOfExperience returns the largest "N years" mention in raw-lowercased
// text, or 0 when there is none.
func YearsOfExperience(raw string) int {
	maxYears := 0
	for _, re := range yearsPatterns {
		for _, m := range re.FindAllStringSubmatch(raw, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if n > maxYears {
				maxYears = n
			}
		}
	}
	return maxYears
}

// ExperienceLevel classifies years of experience.
func ExperienceLevel(years int) string {
	switch {
	case years >= 10:
		return LevelSenior
	case years >= 5:
		return LevelMid
	case years >= 2:
		return LevelJunior
	default:
		return LevelEntry
	}
}
