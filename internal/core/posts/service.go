package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"Compass/internal/core/blobs"
	"Compass/internal/core/photos"
	"Compass/internal/core/themes"
	"Compass/internal/core/users"
)

// Config holds post limits
type Config struct {
	MaxFilesPerPost int
}

type postService struct {
	uow      UnitOfWork
	reads    Repositories
	comments CommentCounter
	blobs    blobs.Service
	config   Config
}

// NewPostService creates a new post service.
// reads are the non-transactional repositories used by GetPost.
func NewPostService(uow UnitOfWork, reads Repositories, comments CommentCounter, blobService blobs.Service, config Config) Service {
	return &postService{
		uow:      uow,
		reads:    reads,
		comments: comments,
		blobs:    blobService,
		config:   config,
	}
}

// CreatePost creates a post with its photos in one transaction
// Flow:
// 1. Validate and clean the request
// 2. Verify the acting user and the theme exist
// 3. Insert the post
// 4. For each file in order: upload blob, insert Photo, insert PostPhoto
func (s *postService) CreatePost(ctx context.Context, userID int64, req CreatePostRequest, files []blobs.File) (*Post, error) {
	if userID <= 0 {
		return nil, NewValidationError("userId", "acting user is required")
	}

	fields, err := req.fields().clean(len(files), s.config.MaxFilesPerPost)
	if err != nil {
		return nil, err
	}

	var created *Post
	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		if err := requireUser(ctx, repos, userID); err != nil {
			return err
		}
		if err := requireTheme(ctx, repos, fields.ThemeID); err != nil {
			return err
		}

		post := &Post{UserID: userID}
		fields.apply(post)

		if err := repos.Posts.Create(ctx, post); err != nil {
			return NewStorageError("create post", err)
		}

		attached, err := s.attachPhotos(ctx, repos, userID, post.ID, files)
		if err != nil {
			return err
		}
		post.Photos = attached

		created = post
		return nil
	})
	if err != nil {
		slog.Warn("[POST-CREATE] create failed", "user_id", userID, "theme_id", fields.ThemeID, "error", err)
		return nil, err
	}

	slog.Info("[POST-CREATE] post created",
		"post_id", created.ID,
		"user_id", userID,
		"theme_id", created.ThemeID,
		"photos", len(created.Photos),
	)
	return created, nil
}

// UpdatePost overwrites a post's fields and replaces all of its photos in one transaction
// Flow:
// 1. Validate and clean the request
// 2. Lock the post row, check ownership, re-validate the theme
// 3. Upload and attach the new files
// 4. Detach every previously attached photo
// 5. Write the post
func (s *postService) UpdatePost(ctx context.Context, userID, postID int64, req UpdatePostRequest, files []blobs.File) (*Post, error) {
	if userID <= 0 {
		return nil, NewValidationError("userId", "acting user is required")
	}
	if postID <= 0 {
		return nil, NewValidationError("postId", "must be a positive integer")
	}

	fields, err := req.fields().clean(len(files), s.config.MaxFilesPerPost)
	if err != nil {
		return nil, err
	}

	var updated *Post
	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		post, err := lockOwnedPost(ctx, repos, userID, postID, "update")
		if err != nil {
			return err
		}
		if err := requireTheme(ctx, repos, fields.ThemeID); err != nil {
			return err
		}

		prior, err := repos.Photos.ListByPostID(ctx, postID)
		if err != nil {
			return NewStorageError("list photos", err)
		}

		attached, err := s.attachPhotos(ctx, repos, userID, postID, files)
		if err != nil {
			return err
		}

		if len(prior) > 0 {
			if _, err := repos.Photos.DetachByIDs(ctx, photos.IDs(prior)); err != nil {
				return NewStorageError("detach photos", err)
			}
		}

		fields.apply(post)
		if err := repos.Posts.Update(ctx, post); err != nil {
			if errors.Is(err, ErrNotFound) {
				return NewNotFoundError("post", postID)
			}
			return NewStorageError("update post", err)
		}
		post.Photos = attached

		updated = post
		return nil
	})
	if err != nil {
		slog.Warn("[POST-UPDATE] update failed", "post_id", postID, "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("[POST-UPDATE] post updated", "post_id", postID, "user_id", userID, "photos", len(updated.Photos))
	return updated, nil
}

// DeletePost removes a post and its photo attachments in one transaction.
// Likes and comments are removed by the store's cascading foreign keys.
func (s *postService) DeletePost(ctx context.Context, userID, postID int64) (bool, error) {
	if userID <= 0 {
		return false, NewValidationError("userId", "acting user is required")
	}
	if postID <= 0 {
		return false, NewValidationError("postId", "must be a positive integer")
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		if _, err := lockOwnedPost(ctx, repos, userID, postID, "delete"); err != nil {
			return err
		}

		if _, err := repos.Photos.DetachByPostID(ctx, postID); err != nil {
			return NewStorageError("detach photos", err)
		}

		if err := repos.Posts.Delete(ctx, postID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return NewNotFoundError("post", postID)
			}
			return NewStorageError("delete post", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	slog.Info("[POST-DELETE] post deleted", "post_id", postID, "user_id", userID)
	return true, nil
}

// GetPost loads a post with likes, ordered photo URLs, author and comment count.
// Each relation is one query; nothing is loaded per photo or per like.
func (s *postService) GetPost(ctx context.Context, viewerID, postID int64) (*PostView, error) {
	if postID <= 0 {
		return nil, NewValidationError("postId", "must be a positive integer")
	}

	post, err := s.reads.Posts.GetWithLikes(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, NewNotFoundError("post", postID)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	attached, err := s.reads.Photos.ListByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post photos: %w", err)
	}
	post.Photos = attached

	author, err := s.reads.Users.GetByID(ctx, post.UserID)
	if err != nil {
		if !errors.Is(err, users.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to get post author: %w", err)
		}
		author = nil
	}

	commentCount, err := s.comments.CountByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	view := ToPostView(post, author, commentCount)
	view.LikedByMe = post.LikedBy(viewerID)
	return view, nil
}

// attachPhotos uploads files in input order and links each to the post
func (s *postService) attachPhotos(ctx context.Context, repos Repositories, userID, postID int64, files []blobs.File) ([]*photos.PostPhoto, error) {
	attached := make([]*photos.PostPhoto, 0, len(files))

	for i, file := range files {
		start := time.Now()
		blob, err := s.blobs.Upload(ctx, userID, file)
		if err != nil {
			if blobs.IsInvalidFile(err) {
				return nil, NewValidationError(fmt.Sprintf("files[%d]", i), err.Error())
			}
			return nil, NewStorageError("upload photo", err)
		}
		slog.Debug("[POST-PHOTO] blob stored", "post_id", postID, "key", blob.Key, "duration", time.Since(start))

		photo := &photos.Photo{
			UserID:       userID,
			StoreFileURL: blob.URL,
			StorageKey:   blob.Key,
		}
		if err := repos.Photos.CreatePhoto(ctx, photo); err != nil {
			return nil, NewStorageError("create photo", err)
		}

		postPhoto := &photos.PostPhoto{
			PostID:       postID,
			PhotoID:      photo.ID,
			StoreFileURL: photo.StoreFileURL,
		}
		if err := repos.Photos.Attach(ctx, postPhoto); err != nil {
			return nil, NewStorageError("attach photo", err)
		}

		attached = append(attached, postPhoto)
	}

	return attached, nil
}

// lockOwnedPost loads and locks the post, then checks that userID owns it
func lockOwnedPost(ctx context.Context, repos Repositories, userID, postID int64, action string) (*Post, error) {
	post, err := repos.Posts.GetByIDForUpdate(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, NewNotFoundError("post", postID)
		}
		return nil, NewStorageError("load post", err)
	}

	if post.UserID != userID {
		return nil, NewForbiddenError(action, postID, userID)
	}
	return post, nil
}

func requireUser(ctx context.Context, repos Repositories, userID int64) error {
	if _, err := repos.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return NewNotFoundError("user", userID)
		}
		return NewStorageError("load user", err)
	}
	return nil
}

func requireTheme(ctx context.Context, repos Repositories, themeID int64) error {
	if _, err := repos.Themes.GetByID(ctx, themeID); err != nil {
		if errors.Is(err, themes.ErrThemeNotFound) {
			return NewNotFoundError("theme", themeID)
		}
		return NewStorageError("load theme", err)
	}
	return nil
}
