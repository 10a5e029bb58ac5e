package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Compass/internal/core/users"
)

type postgresUserRepo struct {
	db dbtx
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.UserRepository {
	return &postgresUserRepo{db: db}
}

// Create inserts a new user into the users table
func (r *postgresUserRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	query := `
		INSERT INTO users (email, nickname, profile_image_url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, user.Email, user.Nickname, user.ProfileImageURL).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return nil, users.ErrEmailAlreadyTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by id
func (r *postgresUserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	return r.getOne(ctx, `
		SELECT id, email, nickname, profile_image_url, created_at
		FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves a user by email
func (r *postgresUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.getOne(ctx, `
		SELECT id, email, nickname, profile_image_url, created_at
		FROM users WHERE email = $1`, email)
}

// UpdateProfile writes the editable profile columns
func (r *postgresUserRepo) UpdateProfile(ctx context.Context, user *users.User) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users SET nickname = $2, profile_image_url = $3
		WHERE id = $1`, user.ID, user.Nickname, user.ProfileImageURL)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return users.ErrUserNotFound
	}
	return nil
}

func (r *postgresUserRepo) getOne(ctx context.Context, query string, arg any) (*users.User, error) {
	user := &users.User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Email, &user.Nickname, &user.ProfileImageURL, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetProfileStats counts a user's posts, comments and liked posts in one round trip
func (r *postgresUserRepo) GetProfileStats(ctx context.Context, id int64) (*users.ProfileStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM posts WHERE user_id = $1),
			(SELECT COUNT(*) FROM comments WHERE user_id = $1),
			(SELECT COUNT(*) FROM likes WHERE user_id = $1)`

	stats := &users.ProfileStats{}
	if err := r.db.QueryRowContext(ctx, query, id).
		Scan(&stats.PostCount, &stats.CommentCount, &stats.LikedPostCount); err != nil {
		return nil, fmt.Errorf("failed to get profile stats: %w", err)
	}

	return stats, nil
}
