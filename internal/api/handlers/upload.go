package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"Compass/internal/core/blobs"
)

// ReadFile reads at most maxBytes+1 so the blob service can report an
// oversized file instead of silently truncating it
func ReadFile(fh *multipart.FileHeader, maxBytes int) (blobs.File, error) {
	f, err := fh.Open()
	if err != nil {
		return blobs.File{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(maxBytes)+1))
	if err != nil {
		return blobs.File{}, err
	}

	return blobs.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// WriteBodyError writes 413 when err came from http.MaxBytesReader and a 400
// with message otherwise
func WriteBodyError(w http.ResponseWriter, err error, message string) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		WriteError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge",
			fmt.Sprintf("Request body too large (max %d bytes)", maxErr.Limit))
		return
	}
	WriteError(w, http.StatusBadRequest, "InvalidRequest", message)
}
