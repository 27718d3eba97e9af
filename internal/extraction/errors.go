package extraction

import "fmt"

// PatternError is returned when a detection pattern cannot be compiled
type PatternError struct {
	Category string
	Cause    error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("failed to compile %s detection pattern: %v", e.Category, e.Cause)
}

func (e *PatternError) Unwrap() error {
	return e.Cause
}
