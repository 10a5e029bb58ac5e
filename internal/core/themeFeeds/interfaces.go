package themeFeeds

import "context"

// Service defines the business logic interface for feeds
type Service interface {
	// GetThemeFeed returns a theme's posts newest first
	GetThemeFeed(ctx context.Context, req GetThemeFeedRequest) (*FeedResponse, error)

	// GetLikedFeed returns the posts a user liked, newest post first
	GetLikedFeed(ctx context.Context, req GetLikedFeedRequest) (*FeedResponse, error)
}

// Repository defines the data access interface for feeds.
// Phase one methods return at most limit rows with id < cursor ordered by id DESC.
type Repository interface {
	ListThemePostRows(ctx context.Context, themeID int64, cursor *int64, limit int) ([]*PostRow, error)
	ListLikedPostRows(ctx context.Context, userID int64, cursor *int64, limit int) ([]*PostRow, error)

	// LoadRelations batch-loads photos, likes and comment counts for postIDs
	// with one query per relation.
	LoadRelations(ctx context.Context, postIDs []int64) (*Relations, error)
}
