package routes

import (
	"net/http"

	"Compass/internal/api/handlers/like"
	"Compass/internal/core/likes"

	"github.com/go-chi/chi/v5"
)

// RegisterLikeRoutes registers like mutations. POST toggles; PUT and DELETE
// set the state idempotently.
func RegisterLikeRoutes(r chi.Router, service likes.Service, requireAuth func(http.Handler) http.Handler) {
	h := like.NewHandler(service)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/api/posts/{postID}/like", h.HandleToggle)
		r.Put("/api/posts/{postID}/like", h.HandleLike)
		r.Delete("/api/posts/{postID}/like", h.HandleUnlike)
	})
}
