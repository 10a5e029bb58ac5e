package routes

import (
	"net/http"

	commentsAPI "Compass/internal/api/handlers/comments"
	"Compass/internal/core/comments"

	"github.com/go-chi/chi/v5"
)

// RegisterCommentRoutes registers comment endpoints. Listing is public.
func RegisterCommentRoutes(r chi.Router, service comments.Service, requireAuth func(http.Handler) http.Handler) {
	h := commentsAPI.NewHandler(service)

	r.Get("/api/posts/{postID}/comments", h.HandleList)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/api/posts/{postID}/comments", h.HandleCreate)
		r.Delete("/api/comments/{commentID}", h.HandleDelete)
	})
}
