package likes

import "time"

// Like records that a user liked a post. (post_id, user_id) is unique in the store.
type Like struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    int64     `json:"userId" db:"user_id"`
}

// ToggleLikeResponse is returned by every like mutation
type ToggleLikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}

// ToggleObserver receives one event per successful toggle. May be nil.
type ToggleObserver interface {
	RecordLikeToggle(liked bool)
}
