package postgres

import (
	"context"
	"database/sql"

	"Compass/internal/core/posts"
)

type postgresUnitOfWork struct {
	db *sql.DB
}

// NewUnitOfWork creates a unit of work whose repositories share one transaction
func NewUnitOfWork(db *sql.DB) posts.UnitOfWork {
	return &postgresUnitOfWork{db: db}
}

// NewPostRepositories returns the non-transactional repository set used for reads
func NewPostRepositories(db *sql.DB) posts.Repositories {
	return bindRepositories(db)
}

// WithinTx runs fn with repositories bound to a single transaction
func (u *postgresUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos posts.Repositories) error) error {
	return withTx(ctx, u.db, nil, func(tx *sql.Tx) error {
		return fn(ctx, bindRepositories(tx))
	})
}

func bindRepositories(q dbtx) posts.Repositories {
	return posts.Repositories{
		Posts:  &postgresPostRepo{db: q},
		Photos: &postgresPhotoRepo{db: q},
		Themes: &postgresThemeRepo{db: q},
		Users:  &postgresUserRepo{db: q},
	}
}
