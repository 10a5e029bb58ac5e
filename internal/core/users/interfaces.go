package users

import (
	"context"

	"Compass/internal/core/blobs"
)

// UserRepository defines the interface for user data persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// UpdateProfile writes nickname and profile image URL.
	// Returns ErrUserNotFound when no row matches.
	UpdateProfile(ctx context.Context, user *User) error

	// GetProfileStats counts the user's posts, comments and liked posts.
	GetProfileStats(ctx context.Context, id int64) (*ProfileStats, error)
}

// UserService defines the interface for user business logic
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetProfile(ctx context.Context, id int64) (*ProfileView, error)

	// UpdateProfile changes the user's nickname. A non-nil image is uploaded
	// through the blob pipeline and replaces the profile image; nil keeps it.
	UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest, image *blobs.File) (*ProfileView, error)
}
