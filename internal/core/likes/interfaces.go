package likes

import "context"

// Repository defines like persistence
type Repository interface {
	// Create inserts the like. created is false when the (post, user) pair already
	// existed. Returns ErrPostNotFound or ErrUserNotFound on FK violations.
	Create(ctx context.Context, like *Like) (created bool, err error)

	// Delete removes the user's like on the post; deleted is false when none existed
	Delete(ctx context.Context, postID, userID int64) (deleted bool, err error)

	// Toggle flips the like state in one transaction and returns the new state
	// together with the post's like count as seen by that transaction.
	Toggle(ctx context.Context, postID, userID int64) (liked bool, likeCount int, err error)

	CountByPostID(ctx context.Context, postID int64) (int, error)
	ListByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]*Like, error)
}

// Service defines like business logic
type Service interface {
	// ToggleLike likes the post if the user has not liked it yet, otherwise unlikes it
	ToggleLike(ctx context.Context, userID, postID int64) (*ToggleLikeResponse, error)

	// LikePost is idempotent: liking twice leaves one like
	LikePost(ctx context.Context, userID, postID int64) (*ToggleLikeResponse, error)

	// UnlikePost is idempotent: unliking a post that was not liked succeeds
	UnlikePost(ctx context.Context, userID, postID int64) (*ToggleLikeResponse, error)
}
