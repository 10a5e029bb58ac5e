package themes

import "context"

// Repository defines theme data access
type Repository interface {
	Create(ctx context.Context, theme *Theme) error
	GetByID(ctx context.Context, id int64) (*Theme, error)
	GetByName(ctx context.Context, name string) (*Theme, error)
	List(ctx context.Context) ([]*Theme, error)
}

// Service defines theme business logic
type Service interface {
	GetTheme(ctx context.Context, id int64) (*Theme, error)
	ListThemes(ctx context.Context) (*ListThemesResponse, error)
	CreateTheme(ctx context.Context, name string) (*Theme, error)
}
