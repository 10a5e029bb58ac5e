package themes

// Theme is a fixed travel category a post is filed under (e.g. "Nature").
// Themes play the role communities play in a forum: every post belongs to
// exactly one and feeds are partitioned by it.
type Theme struct {
	Name string `json:"name" db:"name"`
	ID   int64  `json:"id" db:"id"`
}

// ListThemesResponse is the response for GET /api/themes
type ListThemesResponse struct {
	Themes []*Theme `json:"themes"`
}
