package user

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"Compass/internal/api/handlers"
	"Compass/internal/api/handlers/themeFeed"
	"Compass/internal/api/middleware"
	"Compass/internal/core/blobs"
	"Compass/internal/core/themeFeeds"
	"Compass/internal/core/users"
)

// Handler serves the authenticated user's own resources under /api/users/me
type Handler struct {
	users          users.UserService
	feeds          themeFeeds.Service
	maxUploadBytes int
}

// NewHandler creates the handler. maxUploadBytes bounds the profile image;
// zero uses the blob pipeline default.
func NewHandler(userService users.UserService, feeds themeFeeds.Service, maxUploadBytes int) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = blobs.DefaultConfig().MaxBytes
	}
	return &Handler{users: userService, feeds: feeds, maxUploadBytes: maxUploadBytes}
}

// HandleMe handles GET /api/users/me
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == 0 {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	profile, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		handleUserError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, profile)
}

// HandleUpdateMe handles PUT /api/users/me. The body is JSON {"nickname"} or a
// multipart form with a "nickname" field and an optional "image" file part.
func (h *Handler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == 0 {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, int64(h.maxUploadBytes)+1<<20)

	var req users.UpdateProfileRequest
	var image *blobs.File

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Content-Type is required")
		return
	}

	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handlers.WriteBodyError(w, err, "Invalid request body")
			return
		}

	case "multipart/form-data":
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			handlers.WriteBodyError(w, err, "Invalid multipart body")
			return
		}
		defer func() {
			_ = r.MultipartForm.RemoveAll()
		}()

		if v := r.MultipartForm.Value["nickname"]; len(v) > 0 {
			req.Nickname = v[0]
		}
		if headers := r.MultipartForm.File["image"]; len(headers) > 0 {
			file, err := handlers.ReadFile(headers[0], h.maxUploadBytes)
			if err != nil {
				handlers.WriteBodyError(w, err, "Invalid file part")
				return
			}
			image = &file
		}

	default:
		handlers.WriteError(w, http.StatusUnsupportedMediaType, "UnsupportedMediaType",
			"Expected application/json or multipart/form-data")
		return
	}

	profile, err := h.users.UpdateProfile(r.Context(), userID, req, image)
	if err != nil {
		handleUserError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, profile)
}

// HandleLikedFeed handles GET /api/users/me/likes?cursor=&limit=
func (h *Handler) HandleLikedFeed(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == 0 {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	cursor, limit, err := handlers.PageParams(r)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	resp, err := h.feeds.GetLikedFeed(r.Context(), themeFeeds.GetLikedFeedRequest{
		UserID: userID,
		Cursor: cursor,
		Limit:  limit,
	})
	if err != nil {
		themeFeed.HandleFeedError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// handleUserError maps user service errors to HTTP responses
func handleUserError(w http.ResponseWriter, r *http.Request, err error) {
	var nicknameErr *users.InvalidNicknameError
	var imageErr *users.ProfileImageError

	switch {
	case errors.Is(err, users.ErrUserNotFound):
		handlers.WriteError(w, http.StatusNotFound, "UserNotFound", "User not found")
	case errors.As(err, &nicknameErr):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case errors.As(err, &imageErr) && blobs.IsInvalidFile(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidImage", err.Error())
	case errors.As(err, &imageErr):
		handlers.WriteInternalErrorStatus(w, r, "USER", http.StatusBadGateway, "StorageUnavailable", err)
	default:
		handlers.WriteInternalError(w, r, "USER", err)
	}
}
