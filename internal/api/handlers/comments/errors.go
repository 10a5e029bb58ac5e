package comments

import (
	"errors"
	"net/http"

	"Compass/internal/api/handlers"
	"Compass/internal/core/comments"
)

// handleServiceError maps comment service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case comments.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case errors.Is(err, comments.ErrPostNotFound):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")
	case errors.Is(err, comments.ErrCommentNotFound):
		handlers.WriteError(w, http.StatusNotFound, "CommentNotFound", "Comment not found")
	case errors.Is(err, comments.ErrNotAuthorized):
		handlers.WriteError(w, http.StatusForbidden, "Forbidden", "Only the author can delete this comment")
	default:
		handlers.WriteInternalError(w, r, "COMMENT", err)
	}
}
