package scoring

import "fmt"

// DegenerateSimilarityError is returned when a document has no tokens left
// after cleaning, so no similarity vector can be built
type DegenerateSimilarityError struct {
	ResumeTokens int
	JobTokens    int
}

func (e *DegenerateSimilarityError) Error() string {
	return fmt.Sprintf("degenerate similarity: resume has %d tokens, job description has %d", e.ResumeTokens, e.JobTokens)
}

// WeightsError is returned when aggregation weights are invalid
type WeightsError struct {
	Message string
}

func (e *WeightsError) Error() string {
	return fmt.Sprintf("invalid weights: %s", e.Message)
}
