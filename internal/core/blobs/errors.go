package blobs

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyFile is returned for zero-byte uploads
	ErrEmptyFile = errors.New("file is empty")

	// ErrFileTooLarge is returned when a file exceeds the configured size limit
	ErrFileTooLarge = errors.New("file too large")

	// ErrUnsupportedMimeType is returned for anything other than jpeg, png or webp
	ErrUnsupportedMimeType = errors.New("unsupported MIME type")

	// ErrUndecodableImage is returned when the bytes do not decode as an image
	ErrUndecodableImage = errors.New("image could not be decoded")

	// ErrStoreFailed wraps every failure reported by the blob store
	ErrStoreFailed = errors.New("blob store write failed")
)

// IsInvalidFile reports whether err was caused by the file itself rather than the store
func IsInvalidFile(err error) bool {
	return errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrUnsupportedMimeType) ||
		errors.Is(err, ErrUndecodableImage)
}

// storeError keeps the underlying store error while matching ErrStoreFailed
type storeError struct {
	err error
	key string
}

func (e *storeError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStoreFailed.Error(), e.key, e.err)
}

func (e *storeError) Unwrap() []error {
	return []error{ErrStoreFailed, e.err}
}
