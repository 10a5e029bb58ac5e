package likes

import (
	"context"
	"fmt"
	"log/slog"
)

type likeService struct {
	repo     Repository
	observer ToggleObserver
}

// NewLikeService creates a new like service. observer may be nil.
func NewLikeService(repo Repository, observer ToggleObserver) Service {
	return &likeService{repo: repo, observer: observer}
}

// ToggleLike flips the like state for (userID, postID)
func (s *likeService) ToggleLike(ctx context.Context, userID, postID int64) (*ToggleLikeResponse, error) {
	if err := validateIDs(userID, postID); err != nil {
		return nil, err
	}

	liked, count, err := s.repo.Toggle(ctx, postID, userID)
	if err != nil {
		return nil, s.wrap("toggle", err)
	}

	slog.Debug("[LIKE-TOGGLE] like toggled", "post_id", postID, "user_id", userID, "liked", liked)
	if s.observer != nil {
		s.observer.RecordLikeToggle(liked)
	}

	return &ToggleLikeResponse{Liked: liked, LikeCount: count}, nil
}

// LikePost adds the like if missing
func (s *likeService) LikePost(ctx context.Context, userID, postID int64) (*ToggleLikeResponse, error) {
	if err := validateIDs(userID, postID); err != nil {
		return nil, err
	}

	if _, err := s.repo.Create(ctx, &Like{PostID: postID, UserID: userID}); err != nil {
		return nil, s.wrap("create", err)
	}

	return s.state(ctx, postID, true)
}

// UnlikePost removes the like if present
func (s *likeService) UnlikePost(ctx context.Context, userID, postID int64) (*ToggleLikeResponse, error) {
	if err := validateIDs(userID, postID); err != nil {
		return nil, err
	}

	if _, err := s.repo.Delete(ctx, postID, userID); err != nil {
		return nil, s.wrap("delete", err)
	}

	return s.state(ctx, postID, false)
}

func (s *likeService) state(ctx context.Context, postID int64, liked bool) (*ToggleLikeResponse, error) {
	count, err := s.repo.CountByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	return &ToggleLikeResponse{Liked: liked, LikeCount: count}, nil
}

func (s *likeService) wrap(op string, err error) error {
	switch err {
	case ErrPostNotFound, ErrUserNotFound:
		return err
	}
	return fmt.Errorf("failed to %s like: %w", op, err)
}

func validateIDs(userID, postID int64) error {
	if userID <= 0 {
		return NewValidationError("userId", "acting user is required")
	}
	if postID <= 0 {
		return NewValidationError("postId", "must be a positive integer")
	}
	return nil
}
