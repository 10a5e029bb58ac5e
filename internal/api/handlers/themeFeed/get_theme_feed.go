package themeFeed

import (
	"net/http"

	"Compass/internal/api/handlers"
	"Compass/internal/api/middleware"
	"Compass/internal/core/themeFeeds"
)

// GetThemeFeedHandler handles GET /api/themes/{themeID}/posts
type GetThemeFeedHandler struct {
	feeds themeFeeds.Service
}

func NewGetThemeFeedHandler(feeds themeFeeds.Service) *GetThemeFeedHandler {
	return &GetThemeFeedHandler{feeds: feeds}
}

// HandleGetThemeFeed returns one page of a theme's posts, newest first.
// An unknown theme or a cursor past the end is an empty page.
func (h *GetThemeFeedHandler) HandleGetThemeFeed(w http.ResponseWriter, r *http.Request) {
	themeID, err := handlers.PathID(r, "themeID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	cursor, limit, err := handlers.PageParams(r)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	resp, err := h.feeds.GetThemeFeed(r.Context(), themeFeeds.GetThemeFeedRequest{
		ThemeID:  themeID,
		ViewerID: middleware.GetUserID(r),
		Cursor:   cursor,
		Limit:    limit,
	})
	if err != nil {
		HandleFeedError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// HandleFeedError maps feed service errors to HTTP responses
func HandleFeedError(w http.ResponseWriter, r *http.Request, err error) {
	if themeFeeds.IsValidationError(err) {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}
	handlers.WriteInternalError(w, r, "FEED", err)
}
