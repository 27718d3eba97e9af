package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// DocumentLookup resolves a document id to its plain text. An empty string
// with a nil error means the id does not exist.
type DocumentLookup interface {
	LookupDocument(ctx context.Context, role types.DocumentRole, id string) (string, error)
}

// AnalyzeByID resolves both ids through lookup and analyzes the texts.
// It fails with *NotFoundError when either id resolves to nothing.
func (e *Engine) AnalyzeByID(ctx context.Context, lookup DocumentLookup, resumeID, jobID string) (*types.AnalysisResult, error) {
	resumeText, err := resolve(ctx, lookup, types.RoleResume, resumeID)
	if err != nil {
		return nil, err
	}
	jobText, err := resolve(ctx, lookup, types.RoleJobDescription, jobID)
	if err != nil {
		return nil, err
	}
	return e.Analyze(resumeText, jobText)
}

func resolve(ctx context.Context, lookup DocumentLookup, role types.DocumentRole, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", &NotFoundError{Role: role, ID: id}
	}
	text, err := lookup.LookupDocument(ctx, role, id)
	if err != nil {
		return "", fmt.Errorf("failed to look up %s %s: %w", role, id, err)
	}
	if text == "" {
		return "", &NotFoundError{Role: role, ID: id}
	}
	return text, nil
}

// MapLookup is an in-memory DocumentLookup keyed by role then id
type MapLookup map[types.DocumentRole]map[string]string

// LookupDocument implements DocumentLookup.
func (m MapLookup) LookupDocument(_ context.Context, role types.DocumentRole, id string) (string, error) {
	return m[role][id], nil
}
