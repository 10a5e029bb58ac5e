package posts

import (
	"fmt"

	"Compass/internal/core/text"
)

const (
	maxTitleLength   = 100 // graphemes
	maxDetailBytes   = 10000
	maxLocationBytes = 255
	maxHashtagBytes  = 500
	maxDateBytes     = 50
)

// postFields is the editable part of a post shared by create and update
type postFields struct {
	Title     string
	Detail    string
	Location  string
	Hashtag   string
	StartDate string
	EndDate   string
	ThemeID   int64
}

func (r CreatePostRequest) fields() postFields { return postFields(r) }
func (r UpdatePostRequest) fields() postFields { return postFields(r) }

// clean strips markup from user text and enforces field limits
func (f postFields) clean(fileCount, maxFiles int) (postFields, error) {
	f.Title = text.Clean(f.Title)
	f.Detail = text.Clean(f.Detail)
	f.Location = text.Clean(f.Location)
	f.Hashtag = text.Clean(f.Hashtag)
	f.StartDate = text.Clean(f.StartDate)
	f.EndDate = text.Clean(f.EndDate)

	if f.ThemeID <= 0 {
		return f, NewValidationError("themeId", "must be a positive integer")
	}
	if f.Title == "" {
		return f, NewValidationError("title", "title is required")
	}
	if text.Length(f.Title) > maxTitleLength {
		return f, NewValidationError("title", fmt.Sprintf("must be at most %d characters", maxTitleLength))
	}
	if len(f.Detail) > maxDetailBytes {
		return f, NewValidationError("detail", fmt.Sprintf("must be at most %d bytes", maxDetailBytes))
	}
	if len(f.Location) > maxLocationBytes {
		return f, NewValidationError("location", fmt.Sprintf("must be at most %d bytes", maxLocationBytes))
	}
	if len(f.Hashtag) > maxHashtagBytes {
		return f, NewValidationError("hashtag", fmt.Sprintf("must be at most %d bytes", maxHashtagBytes))
	}
	if len(f.StartDate) > maxDateBytes {
		return f, NewValidationError("startDate", fmt.Sprintf("must be at most %d bytes", maxDateBytes))
	}
	if len(f.EndDate) > maxDateBytes {
		return f, NewValidationError("endDate", fmt.Sprintf("must be at most %d bytes", maxDateBytes))
	}
	if maxFiles > 0 && fileCount > maxFiles {
		return f, NewValidationError("files", fmt.Sprintf("at most %d photos per post", maxFiles))
	}

	return f, nil
}

// apply copies the fields onto post
func (f postFields) apply(post *Post) {
	post.Title = f.Title
	post.Detail = f.Detail
	post.Location = f.Location
	post.Hashtag = f.Hashtag
	post.StartDate = f.StartDate
	post.EndDate = f.EndDate
	post.ThemeID = f.ThemeID
}
