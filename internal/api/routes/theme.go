package routes

import (
	"net/http"

	"Compass/internal/api/handlers/theme"
	"Compass/internal/api/handlers/themeFeed"
	"Compass/internal/core/themeFeeds"
	"Compass/internal/core/themes"

	"github.com/go-chi/chi/v5"
)

// RegisterThemeRoutes registers the theme list and the per-theme feed.
// Both are public; optionalAuth lets a signed-in reader see likedByMe.
func RegisterThemeRoutes(r chi.Router, themeService themes.Service, feedService themeFeeds.Service, optionalAuth func(http.Handler) http.Handler) {
	listHandler := theme.NewListHandler(themeService)
	feedHandler := themeFeed.NewGetThemeFeedHandler(feedService)

	r.Get("/api/themes", listHandler.HandleList)
	r.With(optionalAuth).Get("/api/themes/{themeID}/posts", feedHandler.HandleGetThemeFeed)
}
