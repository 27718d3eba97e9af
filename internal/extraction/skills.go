// Package extraction scans normalized documents for skill, experience and
// education signals.
package extraction

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"github.com/jonathan/resume-matcher/internal/textnorm"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Signals is everything extracted from one document
type Signals struct {
	Technical types.SkillCounts
	Soft      types.SkillCounts
	Years     int
	Education types.EducationLevel
}

// Skills returns the observations for a category.
func (s Signals) Skills(category types.SkillCategory) types.SkillCounts {
	if category == types.CategorySoft {
		return s.Soft
	}
	return s.Technical
}

// Extractor holds one compiled detection pattern per skill category.
// It is immutable and safe for concurrent use.
type Extractor struct {
	tax      *taxonomy.Taxonomy
	patterns map[types.SkillCategory]*regexp.Regexp
}

// New compiles the detection table for every category of tax.
func New(tax *taxonomy.Taxonomy) (*Extractor, error) {
	e := &Extractor{
		tax:      tax,
		patterns: make(map[types.SkillCategory]*regexp.Regexp),
	}
	for _, category := range []types.SkillCategory{types.CategoryTechnical, types.CategorySoft} {
		re, err := compileTerms(tax.Terms(category))
		if err != nil {
			return nil, &PatternError{Category: string(category), Cause: err}
		}
		e.patterns[category] = re
	}
	return e, nil
}

// Extract produces the signals of one normalized document.
func (e *Extractor) Extract(doc textnorm.Normalized) Signals {
	return Signals{
		Technical: e.Skills(doc.Raw, types.CategoryTechnical),
		Soft:      e.Skills(doc.Raw, types.CategorySoft),
		Years:     YearsOfExperience(doc.Raw),
		Education: EducationLevelOf(doc.Raw),
	}
}

// Skills counts canonical skills of a category in raw-lowercased text.
// Surface forms are canonicalized before counting, so "flask" and "python"
// accumulate into one counter. No hits yields an empty, non-nil result.
func (e *Extractor) Skills(raw string, category types.SkillCategory) types.SkillCounts {
	counts := types.SkillCounts{}
	re := e.patterns[category]
	if re == nil || raw == "" {
		return counts
	}

	// The pattern needs one separator byte before each term; the leading
	// space stands in for start of text.
	text := " " + raw
	for pos := 0; pos < len(text); {
		loc := re.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[2], pos+loc[3]
		form := text[start:end]
		counts.Observe(e.tax.Canonicalize(form), form)
		// Resume on the last byte of the hit so it can serve as the
		// separator of an adjacent term such as "c++/c#".
		pos = end - 1
	}
	return counts
}

// compileTerms builds one alternation with the longest terms first, wrapped
// in word boundaries: the byte before a hit must not be alphanumeric and the
// byte after must not be alphanumeric, '+' or '#'. A longer term that fails
// the trailing boundary falls back to a shorter one at the same position.
func compileTerms(terms []string) (*regexp.Regexp, error) {
	sorted := make([]string, 0, len(terms))
	for _, t := range terms {
		if t != "" {
			sorted = append(sorted, t)
		}
	}
	if len(sorted) == 0 {
		return regexp.Compile(`$^`)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	quoted := make([]string, len(sorted))
	for i, t := range sorted {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.Compile(`[^a-z0-9](` + strings.Join(quoted, "|") + `)(?:$|[^a-z0-9+#])`)
}
