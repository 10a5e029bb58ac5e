package theme

import (
	"net/http"

	"Compass/internal/api/handlers"
	"Compass/internal/core/themes"
)

// ListHandler handles GET /api/themes
type ListHandler struct {
	service themes.Service
}

func NewListHandler(service themes.Service) *ListHandler {
	return &ListHandler{service: service}
}

func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListThemes(r.Context())
	if err != nil {
		handlers.WriteInternalError(w, r, "THEME", err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	handlers.WriteJSON(w, http.StatusOK, resp)
}
