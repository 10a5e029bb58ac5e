package users

import (
	"time"
)

// User is a registered traveller. Accounts are provisioned outside this
// service; the table only carries what posts and comments need to render.
type User struct {
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty" db:"profile_image_url"`
	Email           string    `json:"email" db:"email"`
	Nickname        string    `json:"nickname" db:"nickname"`
	ID              int64     `json:"id" db:"id"`
}

// CreateUserRequest represents the input for creating a new user
type CreateUserRequest struct {
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
	Email           string  `json:"email"`
	Nickname        string  `json:"nickname"`
}

// UpdateProfileRequest is the editable part of PUT /api/users/me.
// The profile image arrives separately as a file.
type UpdateProfileRequest struct {
	Nickname string `json:"nickname"`
}

// ProfileStats contains aggregated user statistics
type ProfileStats struct {
	PostCount      int `json:"postCount"`
	CommentCount   int `json:"commentCount"`
	LikedPostCount int `json:"likedPostCount"`
}

// ProfileView is the response for GET /api/users/me
type ProfileView struct {
	CreatedAt       time.Time     `json:"createdAt"`
	ProfileImageURL *string       `json:"profileImageUrl,omitempty"`
	Stats           *ProfileStats `json:"stats,omitempty"`
	Email           string        `json:"email"`
	Nickname        string        `json:"nickname"`
	ID              int64         `json:"id"`
}
