package like

import (
	"context"
	"errors"
	"net/http"

	"Compass/internal/api/handlers"
	"Compass/internal/api/middleware"
	"Compass/internal/core/likes"
)

// Handler serves like mutations on /api/posts/{postID}/like
type Handler struct {
	service likes.Service
}

func NewHandler(service likes.Service) *Handler {
	return &Handler{service: service}
}

// HandleToggle handles POST: likes if not liked, unlikes otherwise
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.service.ToggleLike)
}

// HandleLike handles PUT: idempotent like
func (h *Handler) HandleLike(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.service.LikePost)
}

// HandleUnlike handles DELETE: idempotent unlike
func (h *Handler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.service.UnlikePost)
}

type likeOp func(ctx context.Context, userID, postID int64) (*likes.ToggleLikeResponse, error)

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, op likeOp) {
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

	resp, err := op(r.Context(), userID, postID)
	if err != nil {
		switch {
		case likes.IsValidationError(err):
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		case errors.Is(err, likes.ErrPostNotFound):
			handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")
		case errors.Is(err, likes.ErrUserNotFound):
			handlers.WriteError(w, http.StatusNotFound, "UserNotFound", "User not found")
		default:
			handlers.WriteInternalError(w, r, "LIKE", err)
		}
		return
	}

	handlers.WriteJSON(w, http.StatusOK, resp)
}
