package themeFeeds

import (
	"context"
	"fmt"
	"strconv"
)

const (
	defaultLimit = 10
	maxLimit     = 50

	// MaxPageLimit is the largest page phase two can batch-load
	MaxPageLimit = 1000
)

type feedService struct {
	repo     Repository
	observer PageObserver
	config   Config
}

// NewThemeFeedService creates a new feed service. observer may be nil.
func NewThemeFeedService(repo Repository, config Config, observer PageObserver) Service {
	if config.DefaultLimit <= 0 {
		config.DefaultLimit = defaultLimit
	}
	if config.MaxLimit <= 0 {
		config.MaxLimit = maxLimit
	}
	if config.MaxLimit > MaxPageLimit {
		config.MaxLimit = MaxPageLimit
	}
	if config.DefaultLimit > config.MaxLimit {
		config.DefaultLimit = config.MaxLimit
	}

	return &feedService{
		repo:     repo,
		config:   config,
		observer: observer,
	}
}

// GetThemeFeed retrieves one page of a theme's posts. An unknown theme yields an
// empty page; an unknown cursor simply selects the posts below it.
func (s *feedService) GetThemeFeed(ctx context.Context, req GetThemeFeedRequest) (*FeedResponse, error) {
	// 1. Validate request
	if req.ThemeID <= 0 {
		return nil, NewValidationError("themeId", "must be a positive integer")
	}
	limit, err := s.validatePage(req.Cursor, req.Limit)
	if err != nil {
		return nil, err
	}

	// 2. Phase one: scalar rows, one extra to detect a next page
	rows, err := s.repo.ListThemePostRows(ctx, req.ThemeID, req.Cursor, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to get theme feed: %w", err)
	}

	// 3. Phase two and assembly
	return s.page(ctx, "theme", rows, limit, req.ViewerID)
}

// GetLikedFeed retrieves one page of the posts userID liked
func (s *feedService) GetLikedFeed(ctx context.Context, req GetLikedFeedRequest) (*FeedResponse, error) {
	if req.UserID <= 0 {
		return nil, NewValidationError("userId", "acting user is required")
	}
	limit, err := s.validatePage(req.Cursor, req.Limit)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListLikedPostRows(ctx, req.UserID, req.Cursor, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to get liked feed: %w", err)
	}

	return s.page(ctx, "liked", rows, limit, req.UserID)
}

func (s *feedService) page(ctx context.Context, feed string, rows []*PostRow, limit int, viewerID int64) (*FeedResponse, error) {
	resp := &FeedResponse{}

	if len(rows) > limit {
		rows = rows[:limit]
		next := strconv.FormatInt(rows[len(rows)-1].ID, 10)
		resp.Cursor = &next
	}

	var rel *Relations
	if len(rows) > 0 {
		var err error
		rel, err = s.repo.LoadRelations(ctx, postIDs(rows))
		if err != nil {
			return nil, fmt.Errorf("failed to load feed relations: %w", err)
		}
	}

	resp.Feed = AssembleSummaries(rows, rel, viewerID)

	if s.observer != nil {
		s.observer.ObserveFeedPage(feed, len(resp.Feed))
	}
	return resp, nil
}

// validatePage checks the cursor and returns the effective page size
func (s *feedService) validatePage(cursor *int64, limit int) (int, error) {
	if cursor != nil && *cursor <= 0 {
		return 0, NewValidationError("cursor", "must be a positive integer")
	}
	if limit <= 0 {
		return s.config.DefaultLimit, nil
	}
	if limit > s.config.MaxLimit {
		return s.config.MaxLimit, nil
	}
	return limit, nil
}
