// Package db provides persistence for analysis history and source documents,
// backed by PostgreSQL or a local SQLite file.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Store persists documents and analysis results.
//
// Lookups that find nothing return a nil record (or empty text) and a nil
// error. Store also satisfies analysis.DocumentLookup.
type Store interface {
	SaveDocument(ctx context.Context, input DocumentInput) (*DocumentRecord, error)
	GetDocument(ctx context.Context, id string) (*DocumentRecord, error)
	LookupDocument(ctx context.Context, role types.DocumentRole, id string) (string, error)

	SaveAnalysis(ctx context.Context, input AnalysisInput) (*AnalysisRecord, error)
	GetAnalysis(ctx context.Context, id string) (*AnalysisRecord, error)
	ListAnalyses(ctx context.Context, filters AnalysisFilters) ([]AnalysisSummary, error)
	DashboardSummary(ctx context.Context) (*DashboardSummary, error)

	Close() error
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*SQLiteDB)(nil)
)

func validateDocument(input DocumentInput) error {
	switch input.Role {
	case types.RoleResume, types.RoleJobDescription:
	default:
		return fmt.Errorf("invalid document role %q", input.Role)
	}
	if input.Content == "" {
		return fmt.Errorf("document content is required")
	}
	return nil
}

// prepareAnalysis assigns an analysis id when the result has none and
// returns the serialized result.
func prepareAnalysis(input AnalysisInput) ([]byte, error) {
	if input.Result == nil {
		return nil, fmt.Errorf("analysis result is required")
	}
	if input.Result.ID == "" {
		input.Result.ID = uuid.New().String()
	}
	data, err := json.Marshal(input.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis result: %w", err)
	}
	return data, nil
}

func decodeResult(data []byte) (*types.AnalysisResult, error) {
	var result types.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis result: %w", err)
	}
	return &result, nil
}

// parseID reports whether id is a well-formed document or analysis id.
func parseID(id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return parsed, true
}
