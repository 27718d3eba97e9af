// Package scoring converts skill matches and document signals into category
// percentages and the overall match score.
package scoring

import (
	"fmt"
	"math"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Default aggregation weights. They sum to 1.0.
const (
	DefaultSimilarityWeight = 0.30
	DefaultTechnicalWeight  = 0.40
	DefaultSoftWeight       = 0.10
	DefaultExperienceWeight = 0.12
	DefaultEducationWeight  = 0.08
)

// DefaultApproximateCredit is the credit an approximate match earns relative
// to an exact or synonym match
const DefaultApproximateCredit = 0.7

const weightTolerance = 1e-6

// Weights are the convex combination coefficients of the overall score
type Weights struct {
	Similarity float64 `json:"similarity"`
	Technical  float64 `json:"technical"`
	Soft       float64 `json:"soft"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
}

// DefaultWeights returns the standard weighting.
func DefaultWeights() Weights {
	return Weights{
		Similarity: DefaultSimilarityWeight,
		Technical:  DefaultTechnicalWeight,
		Soft:       DefaultSoftWeight,
		Experience: DefaultExperienceWeight,
		Education:  DefaultEducationWeight,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Similarity + w.Technical + w.Soft + w.Experience + w.Education
}

// Validate checks that no weight is negative and that they sum to 1.0.
// The first negative weight in field order is reported.
func (w Weights) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"similarity", w.Similarity},
		{"technical", w.Technical},
		{"soft", w.Soft},
		{"experience", w.Experience},
		{"education", w.Education},
	} {
		if f.value < 0 {
			return &WeightsError{Message: fmt.Sprintf("%s weight is negative (%g)", f.name, f.value)}
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > weightTolerance {
		return &WeightsError{Message: fmt.Sprintf("weights sum to %g, must sum to 1.0", sum)}
	}
	return nil
}

// CategoryDescriptor parametrizes the skill category scorer
type CategoryDescriptor struct {
	Category          types.SkillCategory
	Weight            float64
	ApproximateCredit float64
}

// Descriptors returns the technical and soft descriptors for w.
func Descriptors(w Weights, approximateCredit float64) []CategoryDescriptor {
	return []CategoryDescriptor{
		{Category: types.CategoryTechnical, Weight: w.Technical, ApproximateCredit: approximateCredit},
		{Category: types.CategorySoft, Weight: w.Soft, ApproximateCredit: approximateCredit},
	}
}

// Score returns the percentage of required skills matched in the
// descriptor's category. Exact and synonym matches earn full credit,
// approximate matches earn ApproximateCredit. No required skills scores 0.
func (d CategoryDescriptor) Score(matches []types.SkillMatch) float64 {
	required := 0
	credit := 0.0
	for _, m := range matches {
		if m.Category != d.Category {
			continue
		}
		required++
		switch m.Kind {
		case types.MatchExact, types.MatchSynonym:
			credit += 1.0
		case types.MatchApproximate:
			credit += d.ApproximateCredit
		}
	}
	if required == 0 {
		return 0
	}
	return Round(Clamp(credit/float64(required)*100), 1)
}

// ExperienceScore compares years of experience. A job with no stated
// requirement, or a resume that meets it, scores 100.
func ExperienceScore(resumeYears, jobYears int) float64 {
	if jobYears <= 0 || resumeYears >= jobYears {
		return 100
	}
	ratio := float64(resumeYears) / float64(jobYears)
	switch {
	case ratio >= 0.8:
		return 85
	case ratio >= 0.6:
		return 70
	default:
		return 50
	}
}

// EducationScore compares education levels on the fixed rank order.
func EducationScore(resume, job types.EducationLevel) float64 {
	if job.Rank() == 0 || resume.Rank() >= job.Rank() {
		return 100
	}
	if job.Rank()-resume.Rank() == 1 {
		return 80
	}
	return 60
}

// Aggregate combines content similarity and the category scores into the
// overall score, clamped to [0,100] and rounded to one decimal.
func Aggregate(similarity float64, scores types.CategoryScores, w Weights) float64 {
	overall := similarity*w.Similarity +
		scores.Technical*w.Technical +
		scores.SoftSkills*w.Soft +
		scores.Experience*w.Experience +
		scores.Education*w.Education
	return Round(Clamp(overall), 1)
}

// ScoreCategory buckets an overall score.
func ScoreCategory(overall float64) string {
	switch {
	case overall >= 80:
		return "excellent"
	case overall >= 60:
		return "good"
	case overall >= 40:
		return "fair"
	default:
		return "poor"
	}
}

// Clamp bounds a percentage to [0,100]. NaN becomes 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
