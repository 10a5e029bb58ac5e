package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Compass/internal/core/comments"

	"github.com/lib/pq"
)

type postgresCommentRepo struct {
	db dbtx
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

// Create inserts a new comment
func (r *postgresCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	query := `
		INSERT INTO comments (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, comment.PostID, comment.UserID, comment.Content).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err, "comments_post_id_fkey") {
			return comments.ErrPostNotFound
		}
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment by id
func (r *postgresCommentRepo) GetByID(ctx context.Context, id int64) (*comments.Comment, error) {
	query := `
		SELECT id, post_id, user_id, content, created_at, updated_at
		FROM comments
		WHERE id = $1`

	comment := &comments.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.PostID, &comment.UserID, &comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, comments.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

const commentViewColumns = `
	c.id, c.post_id, c.user_id, u.nickname, u.profile_image_url, c.content, c.created_at, c.updated_at`

func scanCommentView(row interface{ Scan(dest ...any) error }) (*comments.CommentView, error) {
	view := &comments.CommentView{}
	err := row.Scan(
		&view.CommentID, &view.PostID, &view.UserID, &view.Nickname, &view.ImageURL,
		&view.Content, &view.CreatedAt, &view.UpdatedAt,
	)
	return view, err
}

// GetViewByID retrieves a comment joined with its author
func (r *postgresCommentRepo) GetViewByID(ctx context.Context, id int64) (*comments.CommentView, error) {
	query := `SELECT` + commentViewColumns + `
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1`

	view, err := scanCommentView(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, comments.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment view: %w", err)
	}
	return view, nil
}

// Delete removes a comment
func (r *postgresCommentRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return comments.ErrCommentNotFound
	}
	return nil
}

// ListViewsByPostID returns comments newest first with keyset pagination on id
func (r *postgresCommentRepo) ListViewsByPostID(ctx context.Context, postID int64, cursor *int64, limit int) ([]*comments.CommentView, error) {
	query := `SELECT` + commentViewColumns + `
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1 AND ($2::BIGINT IS NULL OR c.id < $2)
		ORDER BY c.id DESC
		LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, postID, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer closeRows(rows)

	result := make([]*comments.CommentView, 0, limit)
	for rows.Next() {
		view, err := scanCommentView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return result, nil
}

// CountByPostID counts a post's comments
func (r *postgresCommentRepo) CountByPostID(ctx context.Context, postID int64) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}

// CountByPostIDs counts comments for many posts with one GROUP BY query
func (r *postgresCommentRepo) CountByPostIDs(ctx context.Context, postIDs []int64) (map[int64]int, error) {
	result := make(map[int64]int, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}
	if len(postIDs) > maxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds maximum %d", len(postIDs), maxBatchSize)
	}

	query := `
		SELECT post_id, COUNT(*)
		FROM comments
		WHERE post_id = ANY($1)
		GROUP BY post_id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(postIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to batch count comments: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var postID int64
		var count int
		if err := rows.Scan(&postID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan comment count: %w", err)
		}
		result[postID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment counts: %w", err)
	}
	return result, nil
}
