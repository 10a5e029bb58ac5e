package comments

import "context"

// Repository defines comment persistence
type Repository interface {
	// Create inserts the comment. Returns ErrPostNotFound when the post is missing.
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id int64) (*Comment, error)
	GetViewByID(ctx context.Context, id int64) (*CommentView, error)
	Delete(ctx context.Context, id int64) error

	// ListViewsByPostID returns up to limit comments with id < cursor, newest first
	ListViewsByPostID(ctx context.Context, postID int64, cursor *int64, limit int) ([]*CommentView, error)

	CountByPostID(ctx context.Context, postID int64) (int, error)
	CountByPostIDs(ctx context.Context, postIDs []int64) (map[int64]int, error)
}

// Service defines comment business logic
type Service interface {
	CreateComment(ctx context.Context, userID, postID int64, req CreateCommentRequest) (*CommentView, error)
	ListComments(ctx context.Context, req ListCommentsRequest) (*ListCommentsResponse, error)
	DeleteComment(ctx context.Context, userID, commentID int64) error
}
