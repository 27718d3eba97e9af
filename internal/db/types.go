package db

import (
	"time"

	"github.com/jonathan/resume-matcher/internal/types"
)

// DocumentRecord is a stored resume or job description
type DocumentRecord struct {
	ID        string             `json:"id"`
	Role      types.DocumentRole `json:"role"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"created_at"`
}

// DocumentInput is the input for SaveDocument
type DocumentInput struct {
	Role    types.DocumentRole
	Title   string
	Content string
}

// AnalysisInput is the input for SaveAnalysis. ResumeID and JobID are set
// when the analysis was run against stored documents.
type AnalysisInput struct {
	ResumeID    string
	JobID       string
	ResumeTitle string
	JobTitle    string
	Result      *types.AnalysisResult
}

// AnalysisRecord is a stored analysis with its full result
type AnalysisRecord struct {
	ID          string                `json:"id"`
	ResumeID    string                `json:"resume_id,omitempty"`
	JobID       string                `json:"job_id,omitempty"`
	ResumeTitle string                `json:"resume_title,omitempty"`
	JobTitle    string                `json:"job_title,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	Result      *types.AnalysisResult `json:"result"`
}

// AnalysisSummary is a lightweight view of an analysis for listing
type AnalysisSummary struct {
	ID            string    `json:"id"`
	OverallScore  float64   `json:"overall_match_score"`
	ScoreCategory string    `json:"score_category"`
	ResumeTitle   string    `json:"resume_title,omitempty"`
	JobTitle      string    `json:"job_title,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// AnalysisFilters holds optional filters for listing analyses
type AnalysisFilters struct {
	Category string
	MinScore float64
	Limit    int
}

// DashboardSummary aggregates the analysis history
type DashboardSummary struct {
	TotalAnalyses  int        `json:"total_analyses"`
	AverageScore   float64    `json:"average_score"`
	LastScore      *float64   `json:"last_score,omitempty"`
	LastAnalysisAt *time.Time `json:"last_analysis_at,omitempty"`
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

func (f AnalysisFilters) limit() int {
	if f.Limit <= 0 {
		return DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		return MaxListLimit
	}
	return f.Limit
}
