package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Migrate creates the tables if they do not exist
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (db *DB) Close() error {
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}

// SaveDocument stores a resume or job description and returns the new record
func (db *DB) SaveDocument(ctx context.Context, input DocumentInput) (*DocumentRecord, error) {
	if err := validateDocument(input); err != nil {
		return nil, err
	}

	doc := DocumentRecord{ID: uuid.New().String(), Role: input.Role, Title: input.Title, Content: input.Content}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO documents (id, role, title, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		doc.ID, string(doc.Role), doc.Title, doc.Content,
	).Scan(&doc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	return &doc, nil
}

// GetDocument retrieves a document by ID
func (db *DB) GetDocument(ctx context.Context, id string) (*DocumentRecord, error) {
	docID, ok := parseID(id)
	if !ok {
		return nil, nil
	}

	var doc DocumentRecord
	var role string
	err := db.pool.QueryRow(ctx,
		`SELECT id, role, title, content, created_at FROM documents WHERE id = $1`,
		docID,
	).Scan(&docID, &role, &doc.Title, &doc.Content, &doc.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	doc.ID = docID.String()
	doc.Role = types.DocumentRole(role)
	return &doc, nil
}

// LookupDocument returns the text of the document with the given role and ID
func (db *DB) LookupDocument(ctx context.Context, role types.DocumentRole, id string) (string, error) {
	doc, err := db.GetDocument(ctx, id)
	if err != nil || doc == nil || doc.Role != role {
		return "", err
	}
	return doc.Content, nil
}

// SaveAnalysis stores an analysis result
func (db *DB) SaveAnalysis(ctx context.Context, input AnalysisInput) (*AnalysisRecord, error) {
	data, err := prepareAnalysis(input)
	if err != nil {
		return nil, err
	}

	rec := AnalysisRecord{
		ID:          input.Result.ID,
		ResumeID:    input.ResumeID,
		JobID:       input.JobID,
		ResumeTitle: input.ResumeTitle,
		JobTitle:    input.JobTitle,
		Result:      input.Result,
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO analyses (id, resume_id, job_id, resume_title, job_title, overall_score, score_category, result)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		rec.ID, nullableID(rec.ResumeID), nullableID(rec.JobID), rec.ResumeTitle, rec.JobTitle,
		input.Result.OverallScore, input.Result.ScoreCategory, data,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return &rec, nil
}

// GetAnalysis retrieves an analysis by ID
func (db *DB) GetAnalysis(ctx context.Context, id string) (*AnalysisRecord, error) {
	analysisID, ok := parseID(id)
	if !ok {
		return nil, nil
	}

	var rec AnalysisRecord
	var resumeID, jobID *uuid.UUID
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT resume_id, job_id, resume_title, job_title, result, created_at
		 FROM analyses WHERE id = $1`,
		analysisID,
	).Scan(&resumeID, &jobID, &rec.ResumeTitle, &rec.JobTitle, &data, &rec.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	rec.ID = analysisID.String()
	if resumeID != nil {
		rec.ResumeID = resumeID.String()
	}
	if jobID != nil {
		rec.JobID = jobID.String()
	}
	if rec.Result, err = decodeResult(data); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListAnalyses retrieves recent analyses with optional filters
func (db *DB) ListAnalyses(ctx context.Context, filters AnalysisFilters) ([]AnalysisSummary, error) {
	query := `SELECT id, overall_score, score_category, resume_title, job_title, created_at
		FROM analyses WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Category != "" {
		query += fmt.Sprintf(" AND score_category = $%d", argNum)
		args = append(args, filters.Category)
		argNum++
	}
	if filters.MinScore > 0 {
		query += fmt.Sprintf(" AND overall_score >= $%d", argNum)
		args = append(args, filters.MinScore)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.limit())

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	summaries := []AnalysisSummary{}
	for rows.Next() {
		var s AnalysisSummary
		var id uuid.UUID
		if err := rows.Scan(&id, &s.OverallScore, &s.ScoreCategory, &s.ResumeTitle, &s.JobTitle, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		s.ID = id.String()
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return summaries, nil
}

// DashboardSummary aggregates the analysis history
func (db *DB) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	var summary DashboardSummary
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(overall_score), 0) FROM analyses`,
	).Scan(&summary.TotalAnalyses, &summary.AverageScore)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize analyses: %w", err)
	}
	summary.AverageScore = scoring.Round(summary.AverageScore, 1)

	var last float64
	var at time.Time
	err = db.pool.QueryRow(ctx,
		`SELECT overall_score, created_at FROM analyses ORDER BY created_at DESC LIMIT 1`,
	).Scan(&last, &at)
	if err != nil {
		if err == pgx.ErrNoRows {
			return &summary, nil
		}
		return nil, fmt.Errorf("failed to get last analysis: %w", err)
	}
	summary.LastScore = &last
	summary.LastAnalysisAt = &at
	return &summary, nil
}

func nullableID(id string) *uuid.UUID {
	parsed, ok := parseID(id)
	if !ok {
		return nil
	}
	return &parsed
}
