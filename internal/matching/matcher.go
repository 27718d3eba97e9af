// Package matching resolves the skills a job description requires against
// the skills observed in a resume.
package matching

import (
	"math"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Default matcher tuning
const (
	DefaultApproximateThreshold = 85.0
	DefaultCriticalBoost        = 1.5
	DefaultFrequencyCap         = 3
)

// DefaultCriticalSkills are boosted when computing importance
var DefaultCriticalSkills = []string{
	"python", "javascript", "java", "react", "sql", "database", "cloud", "aws", "artificial intelligence",
}

// Options tunes the matcher
type Options struct {
	// ApproximateThreshold is the exclusive lower bound on the similarity
	// ratio (0-100) for an approximate match.
	ApproximateThreshold float64
	// CriticalBoost multiplies the importance of critical skills.
	CriticalBoost float64
	// FrequencyCap is the job-side frequency at which importance saturates.
	FrequencyCap   int
	CriticalSkills []string
}

// DefaultOptions returns the standard matcher tuning.
func DefaultOptions() Options {
	return Options{
		ApproximateThreshold: DefaultApproximateThreshold,
		CriticalBoost:        DefaultCriticalBoost,
		FrequencyCap:         DefaultFrequencyCap,
		CriticalSkills:       DefaultCriticalSkills,
	}
}

// Matcher applies exact, synonym and approximate resolution in that order.
type Matcher struct {
	tax      *taxonomy.Taxonomy
	opts     Options
	critical map[string]bool
}

// New creates a Matcher. Zero-valued options fall back to the defaults.
func New(tax *taxonomy.Taxonomy, opts Options) *Matcher {
	defaults := DefaultOptions()
	if opts.ApproximateThreshold <= 0 {
		opts.ApproximateThreshold = defaults.ApproximateThreshold
	}
	if opts.CriticalBoost <= 0 {
		opts.CriticalBoost = defaults.CriticalBoost
	}
	if opts.FrequencyCap <= 0 {
		opts.FrequencyCap = defaults.FrequencyCap
	}
	if opts.CriticalSkills == nil {
		opts.CriticalSkills = defaults.CriticalSkills
	}

	critical := make(map[string]bool, len(opts.CriticalSkills))
	for _, s := range opts.CriticalSkills {
		critical[tax.Canonicalize(s)] = true
	}
	return &Matcher{tax: tax, opts: opts, critical: critical}
}

// Match resolves every required skill in job against resume. The result has
// exactly one entry per job skill, in job order.
func (m *Matcher) Match(category types.SkillCategory, resume, job types.SkillCounts) []types.SkillMatch {
	matches := make([]types.SkillMatch, 0, len(job))
	for _, required := range job {
		match := types.SkillMatch{
			Skill:        required.Name,
			Category:     category,
			JobFrequency: required.Count,
			JobForms:     append([]string(nil), required.Forms...),
			Importance:   m.Importance(required.Name, required.Count),
		}
		m.resolve(&match, resume)
		matches = append(matches, match)
	}
	return matches
}

func (m *Matcher) resolve(match *types.SkillMatch, resume types.SkillCounts) {
	// Exact
	if count, ok := resume.Get(match.Skill); ok {
		match.Kind = types.MatchExact
		match.MatchedAs = match.Skill
		match.ResumeFrequency = count
		return
	}

	// Synonym: any resume key in the same alias group
	canonical := m.tax.Canonicalize(match.Skill)
	for _, o := range resume {
		if m.tax.Canonicalize(o.Name) == canonical {
			match.Kind = types.MatchSynonym
			match.MatchedAs = o.Name
			match.ResumeFrequency = o.Count
			return
		}
	}

	// Approximate: best ratio over resume keys, first key wins ties
	bestIdx := -1
	bestRatio := 0.0
	for i, o := range resume {
		r := Ratio(match.Skill, o.Name)
		if r > bestRatio {
			bestRatio = r
			bestIdx = i
		}
	}
	if bestIdx >= 0 && bestRatio > m.opts.ApproximateThreshold {
		match.Kind = types.MatchApproximate
		match.MatchedAs = resume[bestIdx].Name
		match.ResumeFrequency = resume[bestIdx].Count
		match.Similarity = round(bestRatio, 1)
		return
	}

	match.Kind = types.MatchMissing
}

// Importance derives a 0-1 weight from the job-side frequency, boosted for
// critical skills.
func (m *Matcher) Importance(skill string, jobFrequency int) float64 {
	if jobFrequency <= 0 {
		return 0
	}
	importance := math.Min(float64(jobFrequency)/float64(m.opts.FrequencyCap), 1.0)
	if m.IsCritical(skill) {
		importance *= m.opts.CriticalBoost
	}
	return round(math.Min(importance, 1.0), 3)
}

// IsCritical reports whether skill is on the critical list.
func (m *Matcher) IsCritical(skill string) bool {
	return m.critical[m.tax.Canonicalize(skill)]
}

// Ratio is the normalized edit-distance similarity of two strings, 0-100.
func Ratio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}
	d := levenshtein.ComputeDistance(a, b)
	return float64(total-d) / float64(total) * 100
}

// Partition splits matches into matched and missing, preserving order.
func Partition(matches []types.SkillMatch) (matched, missing []types.SkillMatch) {
	matched = []types.SkillMatch{}
	missing = []types.SkillMatch{}
	for _, mt := range matches {
		if mt.Matched() {
			matched = append(matched, mt)
		} else {
			missing = append(missing, mt)
		}
	}
	return matched, missing
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
