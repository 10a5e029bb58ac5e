package themes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockThemeRepository struct {
	mock.Mock
}

func (m *mockThemeRepository) Create(ctx context.Context, theme *Theme) error {
	args := m.Called(ctx, theme)
	if args.Error(0) == nil {
		theme.ID = 1
	}
	return args.Error(0)
}

func (m *mockThemeRepository) GetByID(ctx context.Context, id int64) (*Theme, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Theme), args.Error(1)
}

func (m *mockThemeRepository) GetByName(ctx context.Context, name string) (*Theme, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Theme), args.Error(1)
}

func (m *mockThemeRepository) List(ctx context.Context) ([]*Theme, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Theme), args.Error(1)
}

func TestGetTheme_RejectsNonPositiveID(t *testing.T) {
	repo := new(mockThemeRepository)
	service := NewThemeService(repo)

	_, err := service.GetTheme(context.Background(), 0)
	assert.True(t, IsValidationError(err))
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetTheme_NotFound(t *testing.T) {
	repo := new(mockThemeRepository)
	service := NewThemeService(repo)
	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, ErrThemeNotFound)

	_, err := service.GetTheme(context.Background(), 99)
	assert.True(t, IsNotFound(err))
}

func TestListThemes_EmptyIsNotNil(t *testing.T) {
	repo := new(mockThemeRepository)
	service := NewThemeService(repo)
	repo.On("List", mock.Anything).Return([]*Theme(nil), nil)

	resp, err := service.ListThemes(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, resp.Themes)
	assert.Empty(t, resp.Themes)
}

func TestCreateTheme(t *testing.T) {
	repo := new(mockThemeRepository)
	service := NewThemeService(repo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(th *Theme) bool { return th.Name == "Nature" })).Return(nil)

	theme, err := service.CreateTheme(context.Background(), "  Nature ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), theme.ID)
	assert.Equal(t, "Nature", theme.Name)

	_, err = service.CreateTheme(context.Background(), "   ")
	assert.True(t, IsValidationError(err))
}
