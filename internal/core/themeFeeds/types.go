package themeFeeds

// GetThemeFeedRequest represents input for GET /api/themes/{themeID}/posts.
// Cursor is the id of the last post of the previous page. ViewerID is 0 for
// anonymous readers and only decides LikedByMe.
type GetThemeFeedRequest struct {
	Cursor   *int64 `json:"cursor,omitempty"`
	ThemeID  int64  `json:"themeId"`
	ViewerID int64  `json:"-"`
	Limit    int    `json:"limit"`
}

// GetLikedFeedRequest represents input for GET /api/users/me/likes
type GetLikedFeedRequest struct {
	Cursor *int64 `json:"cursor,omitempty"`
	UserID int64  `json:"userId"`
	Limit  int    `json:"limit"`
}

// FeedResponse represents paginated feed output
type FeedResponse struct {
	Cursor *string        `json:"cursor,omitempty"`
	Feed   []*PostSummary `json:"feed"`
}

// PostSummary is one feed item
type PostSummary struct {
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	PhotoURLs    []string `json:"photoUrls"`
	ID           int64    `json:"id"`
	LikeCount    int      `json:"likeCount"`
	CommentCount int      `json:"commentCount"`
	LikedByMe    bool     `json:"likedByMe"`
}

// PostRow is the scalar projection loaded in phase one
type PostRow struct {
	Title     string
	Location  string
	StartDate string
	EndDate   string
	ID        int64
}

// Relations holds everything phase two loads for a page, keyed by post id
type Relations struct {
	PhotoURLs     map[int64][]string
	LikerIDs      map[int64][]int64
	CommentCounts map[int64]int
}

// Config holds page size limits. MaxLimit is capped at MaxPageLimit.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// PageObserver receives the size of every served page. May be nil.
type PageObserver interface {
	ObserveFeedPage(feed string, size int)
}
