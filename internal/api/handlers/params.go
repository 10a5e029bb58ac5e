package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// PathID parses a positive int64 chi URL parameter
func PathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

// PageParams parses the cursor and limit query parameters.
// A missing cursor is nil; a missing limit is 0 so the service default applies.
func PageParams(r *http.Request) (cursor *int64, limit int, err error) {
	query := r.URL.Query()

	if raw := query.Get("cursor"); raw != "" {
		c, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil || c <= 0 {
			return nil, 0, fmt.Errorf("cursor must be a positive integer")
		}
		cursor = &c
	}

	if raw := query.Get("limit"); raw != "" {
		l, parseErr := strconv.Atoi(raw)
		if parseErr != nil || l < 0 {
			return nil, 0, fmt.Errorf("limit must be a non-negative integer")
		}
		limit = l
	}

	return cursor, limit, nil
}
