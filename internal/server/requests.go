package server

import (
	"time"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/types"
)

const maxBodyBytes = 2 << 20

// AnalyzeRequest is the request body for POST /analyze
type AnalyzeRequest struct {
	ResumeText     string `json:"resume_text" validate:"required,max=200000"`
	JobDescription string `json:"job_description" validate:"required,max=200000"`
	ResumeTitle    string `json:"resume_title,omitempty" validate:"max=200"`
	JobTitle       string `json:"job_title,omitempty" validate:"max=200"`
}

// AnalyzeByIDRequest is the request body for POST /analyze/by-id
type AnalyzeByIDRequest struct {
	ResumeID string `json:"resume_id" validate:"required,max=512"`
	JobID    string `json:"job_id" validate:"required,max=512"`
}

// DocumentRequest is the request body for POST /documents
type DocumentRequest struct {
	Role    types.DocumentRole `json:"role" validate:"required,oneof=resume job_description"`
	Title   string             `json:"title,omitempty" validate:"max=200"`
	Content string             `json:"content" validate:"required,max=200000"`
	Format  string             `json:"format,omitempty" validate:"omitempty,oneof=text markdown html"`
}

// DocumentResponse is the response for POST /documents
type DocumentResponse struct {
	ID        string             `json:"id"`
	Role      types.DocumentRole `json:"role"`
	Title     string             `json:"title,omitempty"`
	Words     int                `json:"words"`
	Hash      string             `json:"hash"`
	CreatedAt time.Time          `json:"created_at"`
}

// AnalysisListResponse is the response for GET /analyses
type AnalysisListResponse struct {
	Analyses []db.AnalysisSummary `json:"analyses"`
	Count    int                  `json:"count"`
}
