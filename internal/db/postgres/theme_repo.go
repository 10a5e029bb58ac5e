package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Compass/internal/core/themes"
)

type postgresThemeRepo struct {
	db dbtx
}

// NewThemeRepository creates a new PostgreSQL theme repository
func NewThemeRepository(db *sql.DB) themes.Repository {
	return &postgresThemeRepo{db: db}
}

// Create inserts a theme
func (r *postgresThemeRepo) Create(ctx context.Context, theme *themes.Theme) error {
	err := r.db.QueryRowContext(ctx, `INSERT INTO themes (name) VALUES ($1) RETURNING id`, theme.Name).
		Scan(&theme.ID)
	if err != nil {
		if isUniqueViolation(err, "themes_name_key") {
			return themes.ErrThemeAlreadyExists
		}
		return fmt.Errorf("failed to create theme: %w", err)
	}
	return nil
}

// GetByID retrieves a theme by id
func (r *postgresThemeRepo) GetByID(ctx context.Context, id int64) (*themes.Theme, error) {
	theme := &themes.Theme{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM themes WHERE id = $1`, id).
		Scan(&theme.ID, &theme.Name)
	if err == sql.ErrNoRows {
		return nil, themes.ErrThemeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get theme: %w", err)
	}
	return theme, nil
}

// GetByName retrieves a theme by its unique name
func (r *postgresThemeRepo) GetByName(ctx context.Context, name string) (*themes.Theme, error) {
	theme := &themes.Theme{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM themes WHERE name = $1`, name).
		Scan(&theme.ID, &theme.Name)
	if err == sql.ErrNoRows {
		return nil, themes.ErrThemeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get theme by name: %w", err)
	}
	return theme, nil
}

// List returns every theme ordered by id
func (r *postgresThemeRepo) List(ctx context.Context) ([]*themes.Theme, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM themes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}
	defer closeRows(rows)

	var result []*themes.Theme
	for rows.Next() {
		theme := &themes.Theme{}
		if err := rows.Scan(&theme.ID, &theme.Name); err != nil {
			return nil, fmt.Errorf("failed to scan theme: %w", err)
		}
		result = append(result, theme)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating themes: %w", err)
	}
	return result, nil
}
