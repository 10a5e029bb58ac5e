package users

import (
	"errors"
	"fmt"
)

// Sentinel errors for common user operations
var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyTaken is returned when an email belongs to another user
	ErrEmailAlreadyTaken = errors.New("email already taken")
)

type InvalidEmailError struct {
	Email string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email address: %q", e.Email)
}

type InvalidNicknameError struct {
	Nickname string
	Reason   string
}

func (e *InvalidNicknameError) Error() string {
	return fmt.Sprintf("invalid nickname %q: %s", e.Nickname, e.Reason)
}

// ProfileImageError wraps a failed profile image upload
type ProfileImageError struct {
	Err error
}

func (e *ProfileImageError) Error() string {
	return fmt.Sprintf("profile image upload failed: %v", e.Err)
}

func (e *ProfileImageError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if error is a user not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}
