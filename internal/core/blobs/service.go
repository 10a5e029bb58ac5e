package blobs

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// Service defines the interface for blob operations
type Service interface {
	// Upload validates and normalises a photo, then writes it to the store
	// under a content-addressed key scoped to the owning user.
	Upload(ctx context.Context, userID int64, file File) (*StoredBlob, error)
}

type blobService struct {
	store    Store
	observer UploadObserver
	config   Config
}

// NewBlobService creates a new blob service. observer may be nil.
func NewBlobService(store Store, config Config, observer UploadObserver) Service {
	defaults := DefaultConfig()
	if config.MaxBytes <= 0 {
		config.MaxBytes = defaults.MaxBytes
	}
	if config.JPEGQuality <= 0 || config.JPEGQuality > 100 {
		config.JPEGQuality = defaults.JPEGQuality
	}
	if config.UploadTimeout <= 0 {
		config.UploadTimeout = defaults.UploadTimeout
	}

	return &blobService{
		store:    store,
		config:   config,
		observer: observer,
	}
}

// Upload stores a photo
// Flow:
// 1. Validate size (non-empty, <= MaxBytes)
// 2. Normalise and validate MIME type (sniff when missing)
// 3. Decode, orient, downscale, re-encode as JPEG
// 4. Key by CID of the normalised bytes
// 5. Put under UploadTimeout
func (s *blobService) Upload(ctx context.Context, userID int64, file File) (*StoredBlob, error) {
	blob, err := s.upload(ctx, userID, file)
	switch {
	case err == nil:
		s.record("ok")
	case IsInvalidFile(err):
		s.record("invalid")
	default:
		s.record("store_error")
	}
	return blob, err
}

func (s *blobService) upload(ctx context.Context, userID int64, file File) (*StoredBlob, error) {
	if len(file.Data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(file.Data) > s.config.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds maximum of %d bytes", ErrFileTooLarge, len(file.Data), s.config.MaxBytes)
	}

	mimeType := normalizeMimeType(file.ContentType)
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = normalizeMimeType(http.DetectContentType(file.Data))
	}
	if !isValidMimeType(mimeType) {
		return nil, fmt.Errorf("%w: %s (allowed: image/jpeg, image/png, image/webp)", ErrUnsupportedMimeType, mimeType)
	}

	img, err := normalizeImage(file.Data, s.config.MaxDimension, s.config.JPEGQuality)
	if err != nil {
		return nil, err
	}

	contentID, err := ComputeCID(img.Data)
	if err != nil {
		return nil, err
	}
	key := ObjectKey(userID, contentID)

	putCtx, cancel := context.WithTimeout(ctx, s.config.UploadTimeout)
	defer cancel()

	url, err := s.store.Put(putCtx, key, "image/jpeg", img.Data)
	if err != nil {
		slog.Error("[BLOB-UPLOAD-ERROR] store write failed",
			"user_id", userID,
			"key", key,
			"file", file.Name,
			"error", err,
		)
		return nil, &storeError{key: key, err: err}
	}

	return &StoredBlob{
		Key:         key,
		URL:         url,
		CID:         contentID,
		ContentType: "image/jpeg",
		Size:        len(img.Data),
		Width:       img.Width,
		Height:      img.Height,
	}, nil
}

func (s *blobService) record(result string) {
	if s.observer != nil {
		s.observer.RecordBlobUpload(result)
	}
}

// normalizeMimeType converts non-standard MIME types to their standard equivalents
// Common case: Many clients send image/jpg instead of the standard image/jpeg
func normalizeMimeType(mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	switch mimeType {
	case "image/jpg", "image/pjpeg":
		return "image/jpeg"
	default:
		return mimeType
	}
}

// isValidMimeType checks if the MIME type is allowed for photo uploads
func isValidMimeType(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "image/webp":
		return true
	default:
		return false
	}
}
