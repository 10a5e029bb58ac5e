package likes

import (
	"errors"
	"fmt"
)

var (
	// ErrPostNotFound indicates the post being liked doesn't exist
	ErrPostNotFound = errors.New("post not found")

	// ErrUserNotFound indicates the acting user doesn't exist
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
