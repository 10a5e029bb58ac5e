package routes

import (
	"net/http"

	"Compass/internal/api/handlers/post"
	"Compass/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers /api/posts endpoints on the router.
// Reading is public; optionalAuth lets a signed-in reader see likedByMe.
// Only post authors can update or delete their own posts; the service enforces it.
func RegisterPostRoutes(r chi.Router, service posts.Service, cfg post.Config, requireAuth, optionalAuth func(http.Handler) http.Handler) {
	h := post.NewHandler(service, cfg)

	r.With(optionalAuth).Get("/api/posts/{postID}", h.HandleGet)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/api/posts", h.HandleCreate)
		r.Put("/api/posts/{postID}", h.HandleUpdate)
		r.Delete("/api/posts/{postID}", h.HandleDelete)
	})
}
