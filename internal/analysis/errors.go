package analysis

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// EmptyInputError is returned when one or both documents are empty or
// whitespace-only. No partial result is produced.
type EmptyInputError struct {
	Roles []types.DocumentRole
}

func (e *EmptyInputError) Error() string {
	roles := make([]string, len(e.Roles))
	for i, r := range e.Roles {
		roles[i] = string(r)
	}
	return fmt.Sprintf("empty input: %s must not be empty", strings.Join(roles, " and "))
}

// AnalysisFailedError is returned when an analysis could not produce a result
type AnalysisFailedError struct {
	Message string
	Cause   error
}

func (e *AnalysisFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis failed: %s", e.Message)
}

func (e *AnalysisFailedError) Unwrap() error {
	return e.Cause
}

// NotFoundError is returned when a document id does not resolve to text
type NotFoundError struct {
	Role types.DocumentRole
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Role, e.ID)
}
