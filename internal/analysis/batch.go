package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/types"
)

// DefaultBatchConcurrency bounds parallel analyses in a batch
const DefaultBatchConcurrency = 4

// Pair is one resume and job description to analyze
type Pair struct {
	ID     string `json:"id,omitempty"`
	Resume string `json:"resume" validate:"required"`
	Job    string `json:"job_description" validate:"required"`
}

// BatchResult is the outcome for one Pair. Exactly one of Result and Err is set.
type BatchResult struct {
	ID     string                `json:"id,omitempty"`
	Result *types.AnalysisResult `json:"result,omitempty"`
	Err    error                 `json:"-"`
}

// AnalyzeBatch analyzes pairs in parallel with at most concurrency workers.
// Results are returned in input order; a failed pair does not stop the
// others. The returned error is non-nil only when ctx is cancelled.
func (e *Engine) AnalyzeBatch(ctx context.Context, pairs []Pair, concurrency int) ([]BatchResult, error) {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}
	results := make([]BatchResult, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, p := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.Analyze(p.Resume, p.Job)
			results[i] = BatchResult{ID: p.ID, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
