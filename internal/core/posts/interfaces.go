package posts

import (
	"context"

	"Compass/internal/core/blobs"
	"Compass/internal/core/photos"
	"Compass/internal/core/themes"
	"Compass/internal/core/users"
)

// Service defines the interface for post business logic.
// userID is always the authenticated acting user, passed explicitly by the caller.
type Service interface {
	CreatePost(ctx context.Context, userID int64, req CreatePostRequest, files []blobs.File) (*Post, error)
	UpdatePost(ctx context.Context, userID, postID int64, req UpdatePostRequest, files []blobs.File) (*Post, error)
	DeletePost(ctx context.Context, userID, postID int64) (bool, error)

	// GetPost assembles the single-post view. viewerID is 0 for anonymous
	// readers and only decides LikedByMe.
	GetPost(ctx context.Context, viewerID, postID int64) (*PostView, error)
}

// Repository defines the interface for post data persistence
type Repository interface {
	// Create inserts a post and sets ID, CreatedAt and UpdatedAt
	Create(ctx context.Context, post *Post) error

	// GetByID returns the post without likes or photos
	GetByID(ctx context.Context, id int64) (*Post, error)

	// GetByIDForUpdate returns the post and locks its row until the transaction ends.
	// Only meaningful inside UnitOfWork.WithinTx.
	GetByIDForUpdate(ctx context.Context, id int64) (*Post, error)

	// GetWithLikes returns the post with its Likes loaded
	GetWithLikes(ctx context.Context, id int64) (*Post, error)

	// Update writes the editable columns and sets UpdatedAt
	Update(ctx context.Context, post *Post) error

	// Delete removes the post row. Returns ErrNotFound when no row was deleted.
	Delete(ctx context.Context, id int64) error
}

// Repositories is the set of repositories a post operation works with.
// Inside WithinTx every member is bound to the same transaction.
type Repositories struct {
	Posts  Repository
	Photos photos.Repository
	Themes themes.Repository
	Users  users.UserRepository
}

// UnitOfWork runs fn inside one database transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// CommentCounter counts comments on a post
type CommentCounter interface {
	CountByPostID(ctx context.Context, postID int64) (int, error)
}
