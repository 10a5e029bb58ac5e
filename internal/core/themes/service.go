package themes

import (
	"context"
	"fmt"
	"strings"

	"Compass/internal/core/text"
)

const maxThemeNameLength = 50

type themeService struct {
	repo Repository
}

// NewThemeService creates a new theme service
func NewThemeService(repo Repository) Service {
	return &themeService{repo: repo}
}

// GetTheme retrieves a theme by id
func (s *themeService) GetTheme(ctx context.Context, id int64) (*Theme, error) {
	if id <= 0 {
		return nil, NewValidationError("themeId", "must be a positive integer")
	}
	return s.repo.GetByID(ctx, id)
}

// ListThemes returns every theme ordered by id
func (s *themeService) ListThemes(ctx context.Context) (*ListThemesResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}
	if list == nil {
		list = []*Theme{}
	}
	return &ListThemesResponse{Themes: list}, nil
}

// CreateTheme adds a theme. Only the seeder calls this; the HTTP surface is read-only.
func (s *themeService) CreateTheme(ctx context.Context, name string) (*Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "name is required")
	}
	if text.Length(name) > maxThemeNameLength {
		return nil, NewValidationError("name", fmt.Sprintf("must be at most %d characters", maxThemeNameLength))
	}

	theme := &Theme{Name: name}
	if err := s.repo.Create(ctx, theme); err != nil {
		return nil, err
	}
	return theme, nil
}
