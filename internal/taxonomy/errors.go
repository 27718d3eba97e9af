package taxonomy

import "fmt"

// TaxonomyError represents an invalid taxonomy definition
type TaxonomyError struct {
	Message string
	Entry   string
	Cause   error
}

func (e *TaxonomyError) Error() string {
	msg := "invalid taxonomy"
	if e.Entry != "" {
		msg = fmt.Sprintf("invalid taxonomy entry %q", e.Entry)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", msg, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", msg, e.Message)
}

func (e *TaxonomyError) Unwrap() error {
	return e.Cause
}
