// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// DocumentRole identifies which side of an analysis a document belongs to
type DocumentRole string

const (
	RoleResume         DocumentRole = "resume"
	RoleJobDescription DocumentRole = "job_description"
)

// Document is one plain-text input to an analysis
type Document struct {
	Role DocumentRole `json:"role"`
	Text string       `json:"text"`
}

// SkillCategory is the detection category a skill belongs to
type SkillCategory string

const (
	CategoryTechnical SkillCategory = "technical"
	CategorySoft      SkillCategory = "soft"
)

// SkillObservation is a canonical skill seen in a document with its frequency
type SkillObservation struct {
	Name  string       `json:"name"`
	Count int          `json:"count"`
	Role  DocumentRole `json:"role,omitempty"`
	// Forms are the distinct surface strings that were counted under Name
	Forms []string `json:"forms,omitempty"`
}

// SkillCounts is a frequency map that keeps first-occurrence order.
// Iteration over a SkillCounts is always stable.
type SkillCounts []SkillObservation

// Add increments the count for name, appending it when first seen.
func (c *SkillCounts) Add(name string, n int) {
	for i := range *c {
		if (*c)[i].Name == name {
			(*c)[i].Count += n
			return
		}
	}
	*c = append(*c, SkillObservation{Name: name, Count: n})
}

// Observe counts one occurrence of name seen in the text as form.
func (c *SkillCounts) Observe(name, form string) {
	for i := range *c {
		o := &(*c)[i]
		if o.Name != name {
			continue
		}
		o.Count++
		for _, f := range o.Forms {
			if f == form {
				return
			}
		}
		o.Forms = append(o.Forms, form)
		return
	}
	*c = append(*c, SkillObservation{Name: name, Count: 1, Forms: []string{form}})
}

// WithRole returns a copy of c with every observation tagged with role.
func (c SkillCounts) WithRole(role DocumentRole) SkillCounts {
	out := make(SkillCounts, len(c))
	for i, o := range c {
		o.Role = role
		o.Forms = append([]string(nil), o.Forms...)
		out[i] = o
	}
	return out
}

// Get returns the count for name and whether it is present.
func (c SkillCounts) Get(name string) (int, bool) {
	for _, o := range c {
		if o.Name == name {
			return o.Count, true
		}
	}
	return 0, false
}

// Names returns the skill names in first-occurrence order.
func (c SkillCounts) Names() []string {
	names := make([]string, len(c))
	for i, o := range c {
		names[i] = o.Name
	}
	return names
}

// Total returns the sum of all counts.
func (c SkillCounts) Total() int {
	total := 0
	for _, o := range c {
		total += o.Count
	}
	return total
}

// EducationLevel is a discrete education attainment level
type EducationLevel string

const (
	EducationNone          EducationLevel = "none"
	EducationCertification EducationLevel = "certification"
	EducationBachelor      EducationLevel = "bachelor"
	EducationMaster        EducationLevel = "master"
	EducationDoctorate     EducationLevel = "doctorate"
)

// Rank returns the position of the level in the fixed order
// none < certification < bachelor < master < doctorate.
func (l EducationLevel) Rank() int {
	switch l {
	case EducationCertification:
		return 1
	case EducationBachelor:
		return 2
	case EducationMaster:
		return 3
	case EducationDoctorate:
		return 4
	default:
		return 0
	}
}
