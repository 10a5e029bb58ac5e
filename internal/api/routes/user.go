package routes

import (
	"net/http"

	"Compass/internal/api/handlers/user"
	"Compass/internal/core/themeFeeds"
	"Compass/internal/core/users"

	"github.com/go-chi/chi/v5"
)

// RegisterUserRoutes registers the authenticated user's own endpoints
func RegisterUserRoutes(r chi.Router, userService users.UserService, feedService themeFeeds.Service, maxUploadBytes int, requireAuth func(http.Handler) http.Handler) {
	h := user.NewHandler(userService, feedService, maxUploadBytes)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/api/users/me", h.HandleMe)
		r.Put("/api/users/me", h.HandleUpdateMe)
		r.Get("/api/users/me/likes", h.HandleLikedFeed)
	})
}
