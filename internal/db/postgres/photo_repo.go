package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Compass/internal/core/photos"

	"github.com/lib/pq"
)

type postgresPhotoRepo struct {
	db dbtx
}

// NewPhotoRepository creates a new PostgreSQL photo repository
func NewPhotoRepository(db *sql.DB) photos.Repository {
	return &postgresPhotoRepo{db: db}
}

// CreatePhoto inserts a photo row
func (r *postgresPhotoRepo) CreatePhoto(ctx context.Context, photo *photos.Photo) error {
	query := `
		INSERT INTO photos (user_id, store_file_url, storage_key)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	if err := r.db.QueryRowContext(ctx, query, photo.UserID, photo.StoreFileURL, photo.StorageKey).
		Scan(&photo.ID, &photo.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert photo: %w", err)
	}
	return nil
}

// Attach links a photo to a post
func (r *postgresPhotoRepo) Attach(ctx context.Context, postPhoto *photos.PostPhoto) error {
	query := `
		INSERT INTO post_photos (post_id, photo_id)
		VALUES ($1, $2)
		RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, postPhoto.PostID, postPhoto.PhotoID).Scan(&postPhoto.ID); err != nil {
		if isUniqueViolation(err, "unique_post_photo") {
			return photos.ErrAlreadyAttached
		}
		return fmt.Errorf("failed to attach photo: %w", err)
	}
	return nil
}

// ListByPostID returns a post's attachments in display order
func (r *postgresPhotoRepo) ListByPostID(ctx context.Context, postID int64) ([]*photos.PostPhoto, error) {
	query := `
		SELECT pp.id, pp.post_id, pp.photo_id, ph.store_file_url
		FROM post_photos pp
		JOIN photos ph ON ph.id = pp.photo_id
		WHERE pp.post_id = $1
		ORDER BY pp.id`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query post photos: %w", err)
	}
	defer closeRows(rows)

	result := make([]*photos.PostPhoto, 0)
	for rows.Next() {
		pp := &photos.PostPhoto{}
		if err := rows.Scan(&pp.ID, &pp.PostID, &pp.PhotoID, &pp.StoreFileURL); err != nil {
			return nil, fmt.Errorf("failed to scan post photo: %w", err)
		}
		result = append(result, pp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post photos: %w", err)
	}
	return result, nil
}

// ListURLsByPostIDs batch-loads ordered photo URLs for many posts in one query
func (r *postgresPhotoRepo) ListURLsByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]string, error) {
	result := make(map[int64][]string, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}
	if len(postIDs) > maxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds maximum %d", len(postIDs), maxBatchSize)
	}

	query := `
		SELECT pp.post_id, ph.store_file_url
		FROM post_photos pp
		JOIN photos ph ON ph.id = pp.photo_id
		WHERE pp.post_id = ANY($1)
		ORDER BY pp.post_id, pp.id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(postIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to batch query photo urls: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var postID int64
		var url string
		if err := rows.Scan(&postID, &url); err != nil {
			return nil, fmt.Errorf("failed to scan photo url: %w", err)
		}
		result[postID] = append(result[postID], url)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photo urls: %w", err)
	}
	return result, nil
}

// DetachByIDs deletes the given post_photos rows
func (r *postgresPhotoRepo) DetachByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM post_photos WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to detach photos: %w", err)
	}
	return result.RowsAffected()
}

// DetachByPostID deletes every post_photos row of a post
func (r *postgresPhotoRepo) DetachByPostID(ctx context.Context, postID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM post_photos WHERE post_id = $1`, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to detach post photos: %w", err)
	}
	return result.RowsAffected()
}
