package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned by repositories when a post is not found by id
	ErrNotFound = errors.New("post not found")

	// ErrThemeNotFound is returned when the requested theme doesn't exist
	ErrThemeNotFound = errors.New("theme not found")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string // e.g., "post", "theme", "user"
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Resource, e.ID)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, id int64) error {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrThemeNotFound)
}

// NotFoundResource returns the missing resource name, or "" if err is not a NotFoundError
func NotFoundResource(err error) string {
	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return notFoundErr.Resource
	}
	return ""
}

// ForbiddenError is returned when the acting user does not own the post
type ForbiddenError struct {
	Action string
	PostID int64
	UserID int64
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("user %d may not %s post %d", e.UserID, e.Action, e.PostID)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(action string, postID, userID int64) error {
	return &ForbiddenError{
		Action: action,
		PostID: postID,
		UserID: userID,
	}
}

// IsForbidden checks if error is a forbidden error
func IsForbidden(err error) bool {
	var forbiddenErr *ForbiddenError
	return errors.As(err, &forbiddenErr)
}

// StorageError wraps a blob store or persistence failure. It always aborts the
// surrounding transaction.
type StorageError struct {
	Err error
	Op  string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new storage error
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsStorageError checks if error is a storage error
func IsStorageError(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}
