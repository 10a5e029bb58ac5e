// Package comments provides HTTP handlers for post comments.
package comments

import (
	"encoding/json"
	"errors"
	"net/http"

	"Compass/internal/api/handlers"
	"Compass/internal/api/middleware"
	"Compass/internal/core/comments"
)

// Handler serves /api/posts/{postID}/comments and /api/comments/{commentID}
type Handler struct {
	service comments.Service
}

func NewHandler(service comments.Service) *Handler {
	return &Handler{service: service}
}

// HandleCreate handles POST /api/posts/{postID}/comments
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == 0 {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	postID, err := handlers.PathID(r, "postID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	// Comments are short; 64KB is far above the content limit
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)

	var req comments.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			handlers.WriteError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge", "Request body too large")
			return
		}
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	view, err := h.service.CreateComment(r.Context(), userID, postID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, view)
}

// HandleList handles GET /api/posts/{postID}/comments?cursor=&limit=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	postID, err := handlers.PathID(r, "postID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	cursor, limit, err := handlers.PageParams(r)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	resp, err := h.service.ListComments(r.Context(), comments.ListCommentsRequest{
		PostID: postID,
		Cursor: cursor,
		Limit:  limit,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /api/comments/{commentID}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == 0 {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	commentID, err := handlers.PathID(r, "commentID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	if err := h.service.DeleteComment(r.Context(), userID, commentID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
