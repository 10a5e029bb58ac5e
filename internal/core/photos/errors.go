package photos

import "errors"

var (
	// ErrPhotoNotFound is returned when a photo lookup finds no matching record
	ErrPhotoNotFound = errors.New("photo not found")

	// ErrAlreadyAttached is returned when the same photo is linked to a post twice
	ErrAlreadyAttached = errors.New("photo already attached to post")
)
