package post

import (
	"net/http"

	"Compass/internal/api/handlers"
	"Compass/internal/core/posts"
)

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case posts.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	case posts.IsForbidden(err):
		handlers.WriteError(w, http.StatusForbidden, "Forbidden",
			"You are not allowed to modify this post")

	case posts.IsNotFound(err):
		switch posts.NotFoundResource(err) {
		case "theme":
			handlers.WriteError(w, http.StatusNotFound, "ThemeNotFound", err.Error())
		case "user":
			handlers.WriteError(w, http.StatusNotFound, "UserNotFound", err.Error())
		default:
			handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")
		}

	case posts.IsStorageError(err):
		handlers.WriteInternalErrorStatus(w, r, "POST", http.StatusBadGateway, "StorageUnavailable", err)

	default:
		// Don't leak internal error details to clients
		handlers.WriteInternalError(w, r, "POST", err)
	}
}
