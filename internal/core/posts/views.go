package posts

import (
	"strings"
	"unicode"

	"Compass/internal/core/photos"
	"Compass/internal/core/users"
)

// ToPostView assembles the single-post response. author may be nil when the
// account has been removed; the view then carries only the author id.
func ToPostView(post *Post, author *users.User, commentCount int) *PostView {
	view := &PostView{
		ID:           post.ID,
		ThemeID:      post.ThemeID,
		Title:        post.Title,
		Detail:       post.Detail,
		Location:     post.Location,
		Hashtag:      post.Hashtag,
		Hashtags:     ParseHashtags(post.Hashtag),
		StartDate:    post.StartDate,
		EndDate:      post.EndDate,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
		LikeCount:    len(post.Likes),
		CommentCount: commentCount,
		PhotoURLs:    photos.URLs(post.Photos),
		Author:       &AuthorView{ID: post.UserID},
	}

	if author != nil {
		view.Author.Nickname = author.Nickname
		view.Author.ProfileImageURL = author.ProfileImageURL
	}

	return view
}

// ParseHashtags splits a free-text hashtag string ("#jeju #beach,food") into
// tags without the leading '#', deduplicated case-insensitively in input order.
func ParseHashtags(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '#' || r == ',' || unicode.IsSpace(r)
	})

	tags := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		key := strings.ToLower(f)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, f)
	}
	return tags
}
