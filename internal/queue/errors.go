package queue

import "fmt"

// MessageError is a delivery that can never be processed
type MessageError struct {
	Message string
	Cause   error
}

func (e *MessageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid message: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid message: %s", e.Message)
}

func (e *MessageError) Unwrap() error {
	return e.Cause
}
