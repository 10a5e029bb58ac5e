package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Compass/internal/core/likes"
	"Compass/internal/core/posts"
)

type postgresPostRepo struct {
	db dbtx
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

const postColumns = `
	id, user_id, theme_id, title, detail, location, hashtag,
	start_date, end_date, created_at, updated_at`

func scanPost(row interface{ Scan(dest ...any) error }) (*posts.Post, error) {
	post := &posts.Post{}
	err := row.Scan(
		&post.ID, &post.UserID, &post.ThemeID, &post.Title, &post.Detail, &post.Location, &post.Hashtag,
		&post.StartDate, &post.EndDate, &post.CreatedAt, &post.UpdatedAt,
	)
	return post, err
}

// Create inserts a new post into the posts table
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (
			user_id, theme_id, title, detail, location, hashtag, start_date, end_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(
		ctx, query,
		post.UserID, post.ThemeID, post.Title, post.Detail, post.Location, post.Hashtag,
		post.StartDate, post.EndDate,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err, "posts_theme_id_fkey") {
			return posts.ErrThemeNotFound
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by id
func (r *postgresPostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	return r.getOne(ctx, `SELECT`+postColumns+` FROM posts WHERE id = $1`, id)
}

// GetByIDForUpdate retrieves a post and holds a row lock until the transaction ends
func (r *postgresPostRepo) GetByIDForUpdate(ctx context.Context, id int64) (*posts.Post, error) {
	return r.getOne(ctx, `SELECT`+postColumns+` FROM posts WHERE id = $1 FOR UPDATE`, id)
}

func (r *postgresPostRepo) getOne(ctx context.Context, query string, id int64) (*posts.Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// GetWithLikes retrieves a post and its likes (two queries, no per-like lookups)
func (r *postgresPostRepo) GetWithLikes(ctx context.Context, id int64) (*posts.Post, error) {
	post, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, post_id, user_id, created_at
		FROM likes
		WHERE post_id = $1
		ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query post likes: %w", err)
	}
	defer closeRows(rows)

	post.Likes = make([]*likes.Like, 0)
	for rows.Next() {
		like := &likes.Like{}
		if err := rows.Scan(&like.ID, &like.PostID, &like.UserID, &like.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		post.Likes = append(post.Likes, like)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating likes: %w", err)
	}

	return post, nil
}

// Update writes the editable columns
func (r *postgresPostRepo) Update(ctx context.Context, post *posts.Post) error {
	query := `
		UPDATE posts
		SET theme_id = $2, title = $3, detail = $4, location = $5, hashtag = $6,
			start_date = $7, end_date = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(
		ctx, query,
		post.ID, post.ThemeID, post.Title, post.Detail, post.Location, post.Hashtag,
		post.StartDate, post.EndDate,
	).Scan(&post.UpdatedAt)
	if err == sql.ErrNoRows {
		return posts.ErrNotFound
	}
	if err != nil {
		if isForeignKeyViolation(err, "posts_theme_id_fkey") {
			return posts.ErrThemeNotFound
		}
		return fmt.Errorf("failed to update post: %w", err)
	}

	return nil
}

// Delete removes the post row. post_photos must already be gone;
// likes and comments cascade.
func (r *postgresPostRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return posts.ErrNotFound
	}

	return nil
}
