package types

import "time"

// MatchKind describes how a required skill was resolved against the resume
type MatchKind string

const (
	MatchExact       MatchKind = "exact"
	MatchSynonym     MatchKind = "synonym"
	MatchApproximate MatchKind = "approximate"
	MatchMissing     MatchKind = "missing"
)

// SkillMatch is the resolution of one required skill from the job description
type SkillMatch struct {
	Skill           string        `json:"skill"`
	MatchedAs       string        `json:"matched_as,omitempty"`
	Kind            MatchKind     `json:"match_type"`
	Similarity      float64       `json:"similarity,omitempty"` // approximate matches only, 0-100
	Importance      float64       `json:"importance"`           // 0-1
	Category        SkillCategory `json:"category"`
	JobFrequency    int           `json:"jd_freq"`
	JobForms        []string      `json:"jd_forms,omitempty"`
	ResumeFrequency int           `json:"resume_freq,omitempty"`
}

// Matched reports whether the skill was resolved to something in the resume
func (m SkillMatch) Matched() bool {
	return m.Kind != MatchMissing
}

// CategoryScores holds the per-category percentages, each in [0,100]
type CategoryScores struct {
	Technical        float64 `json:"technical_skills"`
	SoftSkills       float64 `json:"soft_skills"`
	Experience       float64 `json:"experience_match"`
	Education        float64 `json:"education_match"`
	ATSCompatibility float64 `json:"ats_compatibility"`
}

// SkillGap is a missing skill important enough to call out
type SkillGap struct {
	Skill      string  `json:"skill"`
	Importance float64 `json:"importance"`
	Priority   string  `json:"priority"`
	Suggestion string  `json:"suggestion"`
}

// StrengthArea is a matched skill the resume mentions repeatedly
type StrengthArea struct {
	Skill         string `json:"skill"`
	Frequency     int    `json:"frequency"`
	StrengthLevel string `json:"strength_level"`
}

// Recommendation priorities, highest first
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
)

// Recommendation is one actionable suggestion for the candidate
type Recommendation struct {
	Type        string `json:"type"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
	Impact      string `json:"impact,omitempty"`
}

// KeywordDensity summarizes how often job keywords appear in the resume
type KeywordDensity struct {
	Density          float64 `json:"density"`
	KeywordCount     int     `json:"keyword_count"`
	TotalWords       int     `json:"total_words"`
	RequiredKeywords int     `json:"required_keywords"`
	MatchedKeywords  int     `json:"matched_keywords"`
	Coverage         float64 `json:"coverage"` // percent of required keywords found in the resume

}

// KeywordAnalysis holds the extracted keywords of both documents
type KeywordAnalysis struct {
	ResumeTechnical SkillCounts    `json:"resume_technical_skills"`
	ResumeSoft      SkillCounts    `json:"resume_soft_skills"`
	JobTechnical    SkillCounts    `json:"jd_technical_skills"`
	JobSoft         SkillCounts    `json:"jd_soft_skills"`
	KeyPhrases      []string       `json:"key_phrases"`
	Density         KeywordDensity `json:"keyword_density"`
}

// TextMetrics describes the size of a document
type TextMetrics struct {
	Length        int `json:"length"`
	WordCount     int `json:"word_count"`
	SentenceCount int `json:"sentence_count"`
}

// ExperienceSummary compares the years of experience on both sides
type ExperienceSummary struct {
	ResumeYears int    `json:"resume_years"`
	JobYears    int    `json:"jd_years"`
	ResumeLevel string `json:"resume_level"`
}

// EducationSummary compares the education levels on both sides
type EducationSummary struct {
	ResumeLevel EducationLevel `json:"resume_level"`
	JobLevel    EducationLevel `json:"jd_level"`
}

// AnalysisResult is the full outcome of matching one resume against one job description
type AnalysisResult struct {
	ID                string            `json:"analysis_id,omitempty"`
	OverallScore      float64           `json:"overall_match_score"`
	ContentSimilarity float64           `json:"content_similarity"`
	ScoreCategory     string            `json:"score_category"`
	Summary           string            `json:"summary"`
	CategoryScores    CategoryScores    `json:"category_scores"`
	MatchedSkills     []SkillMatch      `json:"matched_skills"`
	MissingSkills     []SkillMatch      `json:"missing_skills"`
	SkillGaps         []SkillGap        `json:"skill_gaps"`
	StrengthAreas     []StrengthArea    `json:"strength_areas"`
	Recommendations   []Recommendation  `json:"recommendations"`
	KeywordAnalysis   KeywordAnalysis   `json:"keyword_analysis"`
	TextMetrics       TextMetrics       `json:"text_metrics"`
	Experience        ExperienceSummary `json:"experience"`
	Education         EducationSummary  `json:"education"`
	Partial           bool              `json:"partial,omitempty"`
	Warnings          []string          `json:"warnings,omitempty"`
	Timestamp         time.Time         `json:"timestamp"`
}

// SkillMatches returns matched followed by missing skills
func (r *AnalysisResult) SkillMatches() []SkillMatch {
	all := make([]SkillMatch, 0, len(r.MatchedSkills)+len(r.MissingSkills))
	all = append(all, r.MatchedSkills...)
	return append(all, r.MissingSkills...)
}
