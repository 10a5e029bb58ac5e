package comments

import "time"

// Comment is a user's reply on a post. Comments are flat; there is no threading.
type Comment struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Content   string    `json:"content" db:"content"`
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    int64     `json:"userId" db:"user_id"`
}

// CommentView is a comment joined with its author for display
type CommentView struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	Nickname  string    `json:"nickName"`
	Content   string    `json:"content"`
	CommentID int64     `json:"commentId"`
	PostID    int64     `json:"postId"`
	UserID    int64     `json:"userId"`
}

// CreateCommentRequest is the body of POST /api/posts/{postID}/comments
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// ListCommentsRequest holds list parameters; Cursor is the last seen comment id
type ListCommentsRequest struct {
	Cursor *int64
	PostID int64
	Limit  int
}

// ListCommentsResponse is a page of comments, newest first
type ListCommentsResponse struct {
	Cursor   *string        `json:"cursor,omitempty"`
	Comments []*CommentView `json:"comments"`
}
