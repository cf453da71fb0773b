package models

import "fmt"

// ValidationError is returned for input that can never succeed as sent.
// Routers answer it with 400 and its message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
