package posts

import (
	"time"

	"Compass/internal/core/likes"
	"Compass/internal/core/photos"
)

// Post is a travel write-up filed under one theme. StartDate and EndDate are
// display strings chosen by the client and are never parsed.
type Post struct {
	CreatedAt time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time           `json:"updatedAt" db:"updated_at"`
	Title     string              `json:"title" db:"title"`
	Detail    string              `json:"detail" db:"detail"`
	Location  string              `json:"location" db:"location"`
	Hashtag   string              `json:"hashtag" db:"hashtag"`
	StartDate string              `json:"startDate" db:"start_date"`
	EndDate   string              `json:"endDate" db:"end_date"`
	Photos    []*photos.PostPhoto `json:"photos,omitempty"`
	Likes     []*likes.Like       `json:"-"`
	ID        int64               `json:"id" db:"id"`
	UserID    int64               `json:"userId" db:"user_id"`
	ThemeID   int64               `json:"themeId" db:"theme_id"`
}

// LikedBy reports whether userID is among the loaded Likes
func (p *Post) LikedBy(userID int64) bool {
	if userID <= 0 {
		return false
	}
	for _, like := range p.Likes {
		if like.UserID == userID {
			return true
		}
	}
	return false
}

// CreatePostRequest is the post body of POST /api/posts
type CreatePostRequest struct {
	Title     string `json:"title"`
	Detail    string `json:"detail"`
	Location  string `json:"location"`
	Hashtag   string `json:"hashtag"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	ThemeID   int64  `json:"themeId"`
}

// UpdatePostRequest is the post body of PUT /api/posts/{postID}.
// Every field is overwritten; the attached photos are replaced by the uploaded files.
type UpdatePostRequest struct {
	Title     string `json:"title"`
	Detail    string `json:"detail"`
	Location  string `json:"location"`
	Hashtag   string `json:"hashtag"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	ThemeID   int64  `json:"themeId"`
}

// PostView is the single-post response
type PostView struct {
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	Author       *AuthorView `json:"author"`
	Title        string      `json:"title"`
	Detail       string      `json:"detail"`
	Location     string      `json:"location"`
	Hashtag      string      `json:"hashtag"`
	StartDate    string      `json:"startDate"`
	EndDate      string      `json:"endDate"`
	Hashtags     []string    `json:"hashtags"`
	PhotoURLs    []string    `json:"photoUrls"`
	ID           int64       `json:"id"`
	ThemeID      int64       `json:"themeId"`
	LikeCount    int         `json:"likeCount"`
	CommentCount int         `json:"commentCount"`
	LikedByMe    bool        `json:"likedByMe"`
}

// AuthorView is the post author as shown to readers
type AuthorView struct {
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
	Nickname        string  `json:"nickname"`
	ID              int64   `json:"id"`
}

// DeletePostResponse is the body returned after a delete
type DeletePostResponse struct {
	Success bool `json:"success"`
}
