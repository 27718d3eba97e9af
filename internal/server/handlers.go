package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/cache"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/schemas"
)

// decode reads a JSON body into dst and validates it
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()}
	}
	if err := s.validator.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

// handleAnalyze scores pasted resume text against a pasted job description
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	key := cache.Key(s.cacheVariant, req.ResumeText, req.JobDescription)
	if s.cache != nil {
		// Get returns a private copy; a hit is still a new scan in history.
		if cached, ok := s.cache.Get(r.Context(), key); ok {
			cached.ID = ""
			cached.Timestamp = time.Now().UTC()
			s.record(r, db.AnalysisInput{ResumeTitle: req.ResumeTitle, JobTitle: req.JobTitle, Result: cached})
			w.Header().Set("X-Cache", "HIT")
			s.jsonResponse(w, http.StatusOK, cached)
			return
		}
	}

	result, err := s.engine.Analyze(req.ResumeText, req.JobDescription)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	// Cache before record so the stored copy carries no history ID.
	if s.cache != nil {
		w.Header().Set("X-Cache", "MISS")
		s.cache.Set(r.Context(), key, result)
	}
	s.record(r, db.AnalysisInput{ResumeTitle: req.ResumeTitle, JobTitle: req.JobTitle, Result: result})

	s.jsonResponse(w, http.StatusOK, result)
}

// handleAnalyzeByID scores two stored documents
func (s *Server) handleAnalyzeByID(w http.ResponseWriter, r *http.Request) {
	if s.lookup == nil {
		s.failure(w, r, &ErrUnavailable{Feature: "document storage"})
		return
	}

	var req AnalyzeByIDRequest
	if err := s.decode(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	result, err := s.engine.AnalyzeByID(r.Context(), s.lookup, req.ResumeID, req.JobID)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	input := db.AnalysisInput{ResumeID: req.ResumeID, JobID: req.JobID, Result: result}
	input.ResumeTitle = s.documentTitle(r, req.ResumeID)
	input.JobTitle = s.documentTitle(r, req.JobID)
	s.record(r, input)

	s.jsonResponse(w, http.StatusOK, result)
}

// record checks a fresh result and saves it to history. Neither step fails the request.
func (s *Server) record(r *http.Request, input db.AnalysisInput) {
	if s.validateResults {
		if err := schemas.ValidateResult(input.Result); err != nil {
			s.logger.Error("analysis result does not match schema", "request_id", requestID(r.Context()), "error", err)
		}
	}
	if s.store == nil {
		return
	}
	if _, err := s.store.SaveAnalysis(r.Context(), input); err != nil {
		s.logger.Warn("failed to save analysis", "request_id", requestID(r.Context()), "error", err)
	}
}

func (s *Server) documentTitle(r *http.Request, id string) string {
	if s.store == nil {
		return ""
	}
	doc, err := s.store.GetDocument(r.Context(), id)
	if err != nil || doc == nil {
		return ""
	}
	return doc.Title
}

// handleListAnalyses lists recent analyses
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.failure(w, r, &ErrUnavailable{Feature: "analysis history"})
		return
	}

	filters, err := parseAnalysisFilters(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	analyses, err := s.store.ListAnalyses(r.Context(), filters)
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to list analyses: %w", err))
		return
	}
	s.jsonResponse(w, http.StatusOK, AnalysisListResponse{Analyses: analyses, Count: len(analyses)})
}

func parseAnalysisFilters(r *http.Request) (db.AnalysisFilters, error) {
	q := r.URL.Query()
	filters := db.AnalysisFilters{Category: strings.ToLower(q.Get("category"))}

	switch filters.Category {
	case "", "excellent", "good", "fair", "poor":
	default:
		return filters, &ErrValidation{Field: "category", Message: "must be one of excellent, good, fair, poor"}
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return filters, &ErrValidation{Field: "limit", Message: "must be a non-negative integer"}
		}
		filters.Limit = limit
	}
	if v := q.Get("min_score"); v != "" {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil || score < 0 || score > 100 {
			return filters, &ErrValidation{Field: "min_score", Message: "must be a number between 0 and 100"}
		}
		filters.MinScore = score
	}
	return filters, nil
}

// handleGetAnalysis returns one stored analysis
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.failure(w, r, &ErrUnavailable{Feature: "analysis history"})
		return
	}

	id := r.PathValue("id")
	rec, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to get analysis: %w", err))
		return
	}
	if rec == nil {
		s.failure(w, r, &ErrNotFound{Resource: "analysis", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

// handleDashboardSummary returns aggregate history statistics
func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.failure(w, r, &ErrUnavailable{Feature: "analysis history"})
		return
	}

	summary, err := s.store.DashboardSummary(r.Context())
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to summarize analyses: %w", err))
		return
	}

	response := map[string]any{"summary": summary}
	if s.cache != nil {
		response["cache"] = s.cache.Stats()
	}
	s.jsonResponse(w, http.StatusOK, response)
}

// handleCreateDocument stores a resume or job description for later analysis by id
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.failure(w, r, &ErrUnavailable{Feature: "document storage"})
		return
	}

	var req DocumentRequest
	if err := s.decode(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	format := ingestion.FormatText
	if req.Format != "" {
		format = ingestion.Format(req.Format)
	}
	text, err := ingestion.Extract(format, []byte(req.Content))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if text == "" {
		s.failure(w, r, &ErrValidation{Field: "content", Message: "no text after extraction"})
		return
	}

	doc, err := s.store.SaveDocument(r.Context(), db.DocumentInput{Role: req.Role, Title: req.Title, Content: text})
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to save document: %w", err))
		return
	}

	meta := ingestion.NewMetadata(text, "api")
	s.jsonResponse(w, http.StatusCreated, DocumentResponse{
		ID:        doc.ID,
		Role:      doc.Role,
		Title:     doc.Title,
		Words:     meta.Words,
		Hash:      meta.Hash,
		CreatedAt: doc.CreatedAt,
	})
}
