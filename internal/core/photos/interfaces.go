package photos

import "context"

// Repository defines persistence for photos and their post attachments
type Repository interface {
	// CreatePhoto inserts a photo and sets its ID and CreatedAt
	CreatePhoto(ctx context.Context, photo *Photo) error

	// Attach inserts a PostPhoto row and sets its ID
	Attach(ctx context.Context, postPhoto *PostPhoto) error

	// ListByPostID returns a post's attachments in display order with URLs joined
	ListByPostID(ctx context.Context, postID int64) ([]*PostPhoto, error)

	// ListURLsByPostIDs batch-loads display-ordered photo URLs for many posts.
	// Posts without photos are absent from the map.
	ListURLsByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]string, error)

	// DetachByIDs deletes the given PostPhoto rows and returns how many were removed
	DetachByIDs(ctx context.Context, ids []int64) (int64, error)

	// DetachByPostID deletes every PostPhoto row of a post
	DetachByPostID(ctx context.Context, postID int64) (int64, error)
}
