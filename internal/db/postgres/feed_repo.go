package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Compass/internal/core/comments"
	"Compass/internal/core/likes"
	"Compass/internal/core/photos"
	"Compass/internal/core/themeFeeds"
)

type postgresFeedRepo struct {
	db *sql.DB
}

// NewFeedRepository creates a new PostgreSQL feed repository
func NewFeedRepository(db *sql.DB) themeFeeds.Repository {
	return &postgresFeedRepo{db: db}
}

// ListThemePostRows is phase one of the theme feed: scalars only, keyset on id.
// Uses idx_posts_theme_id_id.
func (r *postgresFeedRepo) ListThemePostRows(ctx context.Context, themeID int64, cursor *int64, limit int) ([]*themeFeeds.PostRow, error) {
	query := `
		SELECT p.id, p.title, p.location, p.start_date, p.end_date
		FROM posts p
		WHERE p.theme_id = $1 AND ($2::BIGINT IS NULL OR p.id < $2)
		ORDER BY p.id DESC
		LIMIT $3`

	return r.queryRows(ctx, query, themeID, cursor, limit)
}

// ListLikedPostRows is phase one of the liked feed. The unique (post_id, user_id)
// constraint guarantees one likes row per post, so the join does not fan out.
func (r *postgresFeedRepo) ListLikedPostRows(ctx context.Context, userID int64, cursor *int64, limit int) ([]*themeFeeds.PostRow, error) {
	query := `
		SELECT p.id, p.title, p.location, p.start_date, p.end_date
		FROM posts p
		JOIN likes l ON l.post_id = p.id
		WHERE l.user_id = $1 AND ($2::BIGINT IS NULL OR p.id < $2)
		ORDER BY p.id DESC
		LIMIT $3`

	return r.queryRows(ctx, query, userID, cursor, limit)
}

func (r *postgresFeedRepo) queryRows(ctx context.Context, query string, args ...any) ([]*themeFeeds.PostRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query feed: %w", err)
	}
	defer closeRows(rows)

	var result []*themeFeeds.PostRow
	for rows.Next() {
		row := &themeFeeds.PostRow{}
		if err := rows.Scan(&row.ID, &row.Title, &row.Location, &row.StartDate, &row.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan feed row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed rows: %w", err)
	}
	return result, nil
}

// LoadRelations is phase two: photos, likes and comment counts for the page,
// one query each through the photo, like and comment repositories. All three
// run in one read-only transaction so the page is consistent with itself.
func (r *postgresFeedRepo) LoadRelations(ctx context.Context, postIDs []int64) (*themeFeeds.Relations, error) {
	rel := &themeFeeds.Relations{}
	opts := &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead}

	err := withTx(ctx, r.db, opts, func(tx *sql.Tx) error {
		var photoRepo photos.Repository = &postgresPhotoRepo{db: tx}
		var likeRepo likes.Repository = &postgresLikeRepo{db: tx}
		var commentRepo comments.Repository = &postgresCommentRepo{db: tx}

		var err error
		if rel.PhotoURLs, err = photoRepo.ListURLsByPostIDs(ctx, postIDs); err != nil {
			return err
		}

		postLikes, err := likeRepo.ListByPostIDs(ctx, postIDs)
		if err != nil {
			return err
		}
		rel.LikerIDs = make(map[int64][]int64, len(postLikes))
		for postID, list := range postLikes {
			for _, like := range list {
				rel.LikerIDs[postID] = append(rel.LikerIDs[postID], like.UserID)
			}
		}

		rel.CommentCounts, err = commentRepo.CountByPostIDs(ctx, postIDs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rel, nil
}
