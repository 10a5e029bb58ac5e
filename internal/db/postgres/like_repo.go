package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Compass/internal/core/likes"

	"github.com/lib/pq"
)

type postgresLikeRepo struct {
	db dbtx
}

// NewLikeRepository creates a new PostgreSQL like repository
func NewLikeRepository(db *sql.DB) likes.Repository {
	return &postgresLikeRepo{db: db}
}

const insertLikeQuery = `
	INSERT INTO likes (post_id, user_id)
	VALUES ($1, $2)
	ON CONFLICT (post_id, user_id) DO NOTHING
	RETURNING id, created_at`

// Create inserts a like. Idempotent: an existing like returns created=false.
func (r *postgresLikeRepo) Create(ctx context.Context, like *likes.Like) (bool, error) {
	err := r.db.QueryRowContext(ctx, insertLikeQuery, like.PostID, like.UserID).Scan(&like.ID, &like.CreatedAt)

	// ON CONFLICT DO NOTHING returns no rows if the like already exists
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, mapLikeError(err)
	}
	return true, nil
}

// Delete removes a user's like on a post
func (r *postgresLikeRepo) Delete(ctx context.Context, postID, userID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}
	return rowsAffected > 0, nil
}

// Toggle inserts the like, or deletes it when the insert hits the unique
// (post_id, user_id) constraint, then counts, all in one transaction.
// A repository already bound to a transaction runs inside it.
func (r *postgresLikeRepo) Toggle(ctx context.Context, postID, userID int64) (bool, int, error) {
	var liked bool
	var count int

	err := runInTx(ctx, r.db, func(tx dbtx) error {
		var id int64
		var createdAt sql.NullTime
		err := tx.QueryRowContext(ctx, insertLikeQuery, postID, userID).Scan(&id, &createdAt)

		switch {
		case err == nil:
			liked = true
		case err == sql.ErrNoRows:
			if _, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID); err != nil {
				return fmt.Errorf("failed to delete like: %w", err)
			}
			liked = false
		default:
			return mapLikeError(err)
		}

		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&count); err != nil {
			return fmt.Errorf("failed to count likes: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}

	return liked, count, nil
}

// CountByPostID counts a post's likes
func (r *postgresLikeRepo) CountByPostID(ctx context.Context, postID int64) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// ListByPostIDs batch-loads likes for many posts
func (r *postgresLikeRepo) ListByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]*likes.Like, error) {
	result := make(map[int64][]*likes.Like, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}
	if len(postIDs) > maxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds maximum %d", len(postIDs), maxBatchSize)
	}

	query := `
		SELECT id, post_id, user_id, created_at
		FROM likes
		WHERE post_id = ANY($1)
		ORDER BY post_id, id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(postIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to batch query likes: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		like := &likes.Like{}
		if err := rows.Scan(&like.ID, &like.PostID, &like.UserID, &like.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		result[like.PostID] = append(result[like.PostID], like)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating likes: %w", err)
	}
	return result, nil
}

func mapLikeError(err error) error {
	switch {
	case isForeignKeyViolation(err, "likes_post_id_fkey"):
		return likes.ErrPostNotFound
	case isForeignKeyViolation(err, "likes_user_id_fkey"):
		return likes.ErrUserNotFound
	default:
		return fmt.Errorf("failed to insert like: %w", err)
	}
}
