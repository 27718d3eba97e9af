package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

// sqliteTime keeps a fixed width so text ordering matches time ordering
const sqliteTime = "2006-01-02T15:04:05.000000000Z"

// SQLiteDB is a Store backed by a local SQLite file
type SQLiteDB struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (or creates) the SQLite database at path and applies the schema
func OpenSQLite(path string) (*SQLiteDB, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}
	return &SQLiteDB{db: db, now: time.Now}, nil
}

// Close closes the database
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) timestamp() (time.Time, string) {
	now := s.now().UTC()
	return now, now.Format(sqliteTime)
}

// SaveDocument stores a resume or job description and returns the new record
func (s *SQLiteDB) SaveDocument(ctx context.Context, input DocumentInput) (*DocumentRecord, error) {
	if err := validateDocument(input); err != nil {
		return nil, err
	}

	createdAt, stamp := s.timestamp()
	doc := DocumentRecord{ID: uuid.New().String(), Role: input.Role, Title: input.Title, Content: input.Content, CreatedAt: createdAt}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, role, title, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		doc.ID, string(doc.Role), doc.Title, doc.Content, stamp,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: save document: %w", err)
	}
	return &doc, nil
}

// GetDocument retrieves a document by ID
func (s *SQLiteDB) GetDocument(ctx context.Context, id string) (*DocumentRecord, error) {
	if _, ok := parseID(id); !ok {
		return nil, nil
	}

	doc := DocumentRecord{ID: id}
	var role, createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT role, title, content, created_at FROM documents WHERE id = ?`, id,
	).Scan(&role, &doc.Title, &doc.Content, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: get document: %w", err)
	}
	doc.Role = types.DocumentRole(role)
	doc.CreatedAt = parseSQLiteTime(createdAt)
	return &doc, nil
}

// LookupDocument returns the text of the document with the given role and ID
func (s *SQLiteDB) LookupDocument(ctx context.Context, role types.DocumentRole, id string) (string, error) {
	doc, err := s.GetDocument(ctx, id)
	if err != nil || doc == nil || doc.Role != role {
		return "", err
	}
	return doc.Content, nil
}

// SaveAnalysis stores an analysis result
func (s *SQLiteDB) SaveAnalysis(ctx context.Context, input AnalysisInput) (*AnalysisRecord, error) {
	data, err := prepareAnalysis(input)
	if err != nil {
		return nil, err
	}

	createdAt, stamp := s.timestamp()
	rec := AnalysisRecord{
		ID:          input.Result.ID,
		ResumeID:    input.ResumeID,
		JobID:       input.JobID,
		ResumeTitle: input.ResumeTitle,
		JobTitle:    input.JobTitle,
		CreatedAt:   createdAt,
		Result:      input.Result,
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, resume_id, job_id, resume_title, job_title, overall_score, score_category, result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, nullString(rec.ResumeID), nullString(rec.JobID), rec.ResumeTitle, rec.JobTitle,
		input.Result.OverallScore, input.Result.ScoreCategory, string(data), stamp,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: save analysis: %w", err)
	}
	return &rec, nil
}

// GetAnalysis retrieves an analysis by ID
func (s *SQLiteDB) GetAnalysis(ctx context.Context, id string) (*AnalysisRecord, error) {
	rec := AnalysisRecord{ID: id}
	var resumeID, jobID sql.NullString
	var data, createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT resume_id, job_id, resume_title, job_title, result, created_at
		 FROM analyses WHERE id = ?`, id,
	).Scan(&resumeID, &jobID, &rec.ResumeTitle, &rec.JobTitle, &data, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: get analysis: %w", err)
	}

	rec.ResumeID = resumeID.String
	rec.JobID = jobID.String
	rec.CreatedAt = parseSQLiteTime(createdAt)
	if rec.Result, err = decodeResult([]byte(data)); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListAnalyses retrieves recent analyses with optional filters
func (s *SQLiteDB) ListAnalyses(ctx context.Context, filters AnalysisFilters) ([]AnalysisSummary, error) {
	query := `SELECT id, overall_score, score_category, resume_title, job_title, created_at
		FROM analyses WHERE 1=1`
	args := []any{}

	if filters.Category != "" {
		query += " AND score_category = ?"
		args = append(args, filters.Category)
	}
	if filters.MinScore > 0 {
		query += " AND overall_score >= ?"
		args = append(args, filters.MinScore)
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ?"
	args = append(args, filters.limit())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list analyses: %w", err)
	}
	defer rows.Close()

	summaries := []AnalysisSummary{}
	for rows.Next() {
		var sum AnalysisSummary
		var createdAt string
		if err := rows.Scan(&sum.ID, &sum.OverallScore, &sum.ScoreCategory, &sum.ResumeTitle, &sum.JobTitle, &createdAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan analysis: %w", err)
		}
		sum.CreatedAt = parseSQLiteTime(createdAt)
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list analyses: %w", err)
	}
	return summaries, nil
}

// DashboardSummary aggregates the analysis history
func (s *SQLiteDB) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	var summary DashboardSummary
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(overall_score), 0.0) FROM analyses`,
	).Scan(&summary.TotalAnalyses, &summary.AverageScore)
	if err != nil {
		return nil, fmt.Errorf("sqlite: summarize analyses: %w", err)
	}
	summary.AverageScore = scoring.Round(summary.AverageScore, 1)

	var last float64
	var createdAt string
	err = s.db.QueryRowContext(ctx,
		`SELECT overall_score, created_at FROM analyses ORDER BY created_at DESC, rowid DESC LIMIT 1`,
	).Scan(&last, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &summary, nil
		}
		return nil, fmt.Errorf("sqlite: get last analysis: %w", err)
	}
	at := parseSQLiteTime(createdAt)
	summary.LastScore = &last
	summary.LastAnalysisAt = &at
	return &summary, nil
}

func parseSQLiteTime(s string) time.Time {
	t, err := time.Parse(sqliteTime, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
