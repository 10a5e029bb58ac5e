package themes

import (
	"errors"
	"fmt"
)

var (
	// ErrThemeNotFound is returned when a theme lookup finds no matching record
	ErrThemeNotFound = errors.New("theme not found")

	// ErrThemeAlreadyExists is returned when a theme name is already used
	ErrThemeAlreadyExists = errors.New("theme already exists")
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
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound checks if error is a theme not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrThemeNotFound)
}
