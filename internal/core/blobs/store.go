package blobs

import "context"

// Store is the write side of a blob backend (S3-compatible bucket or local disk).
// Put writes data under key and returns the public URL clients fetch it from.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}
