package photos

import "time"

// Photo is a stored image owned by the user who uploaded it.
// StorageKey is the content-addressed object key in the blob store and
// StoreFileURL the public URL returned by the store at upload time.
type Photo struct {
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	StoreFileURL string    `json:"storeFileUrl" db:"store_file_url"`
	StorageKey   string    `json:"-" db:"storage_key"`
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
}

// PostPhoto attaches a photo to a post. Insertion order (ascending id) is
// the display order. StoreFileURL is filled on reads joined with photos.
type PostPhoto struct {
	StoreFileURL string `json:"url"`
	ID           int64  `json:"id" db:"id"`
	PostID       int64  `json:"postId" db:"post_id"`
	PhotoID      int64  `json:"photoId" db:"photo_id"`
}

// URLs returns the store URLs of the given attachments in order
func URLs(list []*PostPhoto) []string {
	urls := make([]string, 0, len(list))
	for _, pp := range list {
		urls = append(urls, pp.StoreFileURL)
	}
	return urls
}

// IDs returns the PostPhoto ids of the given attachments in order
func IDs(list []*PostPhoto) []int64 {
	ids := make([]int64, 0, len(list))
	for _, pp := range list {
		ids = append(ids, pp.ID)
	}
	return ids
}
