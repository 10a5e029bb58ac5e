package comments

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"Compass/internal/core/text"
)

const (
	maxContentLength = 1000
	defaultPageSize  = 20
	maxPageSize      = 100
)

type commentService struct {
	repo Repository
}

// NewCommentService creates a new comment service
func NewCommentService(repo Repository) Service {
	return &commentService{repo: repo}
}

// CreateComment adds a comment to a post and returns it joined with its author
func (s *commentService) CreateComment(ctx context.Context, userID, postID int64, req CreateCommentRequest) (*CommentView, error) {
	if userID <= 0 {
		return nil, NewValidationError("userId", "acting user is required")
	}
	if postID <= 0 {
		return nil, NewValidationError("postId", "must be a positive integer")
	}

	content := text.Clean(req.Content)
	if content == "" {
		return nil, NewValidationError("content", "content is required")
	}
	if text.Length(content) > maxContentLength {
		return nil, NewValidationError("content", fmt.Sprintf("must be at most %d characters", maxContentLength))
	}

	comment := &Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		if err == ErrPostNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	slog.Info("[COMMENT-CREATE] comment created", "comment_id", comment.ID, "post_id", postID, "user_id", userID)

	return s.repo.GetViewByID(ctx, comment.ID)
}

// ListComments pages a post's comments newest first
func (s *commentService) ListComments(ctx context.Context, req ListCommentsRequest) (*ListCommentsResponse, error) {
	if req.PostID <= 0 {
		return nil, NewValidationError("postId", "must be a positive integer")
	}
	if req.Cursor != nil && *req.Cursor <= 0 {
		return nil, NewValidationError("cursor", "must be a positive integer")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	// Fetch one extra row to know whether a next page exists
	views, err := s.repo.ListViewsByPostID(ctx, req.PostID, req.Cursor, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	resp := &ListCommentsResponse{Comments: make([]*CommentView, 0, limit)}
	if len(views) > limit {
		views = views[:limit]
		next := strconv.FormatInt(views[len(views)-1].CommentID, 10)
		resp.Cursor = &next
	}
	resp.Comments = append(resp.Comments, views...)

	return resp, nil
}

// DeleteComment removes a comment owned by userID
func (s *commentService) DeleteComment(ctx context.Context, userID, commentID int64) error {
	if userID <= 0 {
		return NewValidationError("userId", "acting user is required")
	}
	if commentID <= 0 {
		return NewValidationError("commentId", "must be a positive integer")
	}

	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		return ErrNotAuthorized
	}

	if err := s.repo.Delete(ctx, commentID); err != nil {
		return err
	}

	slog.Info("[COMMENT-DELETE] comment deleted", "comment_id", commentID, "user_id", userID)
	return nil
}
