package comments

import (
	"errors"
	"fmt"
)

var (
	// ErrCommentNotFound indicates the requested comment doesn't exist
	ErrCommentNotFound = errors.New("comment not found")

	// ErrPostNotFound indicates the commented post doesn't exist
	ErrPostNotFound = errors.New("post not found")

	// ErrNotAuthorized indicates the user is not the comment author
	ErrNotAuthorized = errors.New("not authorized")
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

// IsNotFound checks if err means the comment or its post is missing
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCommentNotFound) || errors.Is(err, ErrPostNotFound)
}
