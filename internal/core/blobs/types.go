package blobs

import "time"

// File is an uploaded file as received at the HTTP boundary
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// StoredBlob is the reference returned after a file has been written to the blob store
type StoredBlob struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	CID         string `json:"cid"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// Config holds limits for the upload pipeline
type Config struct {
	MaxBytes      int
	MaxDimension  int
	JPEGQuality   int
	UploadTimeout time.Duration
}

// DefaultConfig returns the limits used when nothing is configured
func DefaultConfig() Config {
	return Config{
		MaxBytes:      6291456, // 6MB
		MaxDimension:  2048,
		JPEGQuality:   85,
		UploadTimeout: 30 * time.Second,
	}
}

// UploadObserver receives one event per upload attempt.
// result is one of "ok", "invalid", "store_error".
type UploadObserver interface {
	RecordBlobUpload(result string)
}
