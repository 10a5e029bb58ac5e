package post

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"Compass/internal/api/handlers"
	"Compass/internal/api/middleware"
	"Compass/internal/core/blobs"
	"Compass/internal/core/posts"
)

// Config bounds multipart bodies
type Config struct {
	MaxFiles       int
	MaxUploadBytes int
}

// Handler serves the /api/posts endpoints
type Handler struct {
	service posts.Service
	config  Config
}

// NewHandler creates a new post handler
func NewHandler(service posts.Service, config Config) *Handler {
	if config.MaxFiles <= 0 {
		config.MaxFiles = 10
	}
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = blobs.DefaultConfig().MaxBytes
	}
	return &Handler{service: service, config: config}
}

// maxBodyBytes allows every file at its size limit plus 1MB of fields
func (h *Handler) maxBodyBytes() int64 {
	return int64(h.config.MaxFiles+1)*int64(h.config.MaxUploadBytes) + 1<<20
}

// HandleCreate handles POST /api/posts
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == 0 {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	var req posts.CreatePostRequest
	files, ok := h.decodeBody(w, r, &req)
	if !ok {
		return
	}

	post, err := h.service.CreatePost(r.Context(), userID, req, files)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.writePostView(w, r, post.ID, http.StatusCreated)
}

// HandleUpdate handles PUT /api/posts/{postID}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req posts.UpdatePostRequest
	files, ok := h.decodeBody(w, r, &req)
	if !ok {
		return
	}

	post, err := h.service.UpdatePost(r.Context(), userID, postID, req, files)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.writePostView(w, r, post.ID, http.StatusOK)
}

// HandleGet handles GET /api/posts/{postID}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	postID, err := handlers.PathID(r, "postID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	h.writePostView(w, r, postID, http.StatusOK)
}

// HandleDelete handles DELETE /api/posts/{postID}
// Only post authors can delete their own posts
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	ok, err := h.service.DeletePost(r.Context(), userID, postID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, posts.DeletePostResponse{Success: ok})
}

func (h *Handler) writePostView(w http.ResponseWriter, r *http.Request, postID int64, status int) {
	view, err := h.service.GetPost(r.Context(), middleware.GetUserID(r), postID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, status, view)
}

// decodeBody fills dst from either a JSON body (no files) or a multipart form.
// In a multipart form the fields come from a "post" JSON part or from plain
// form fields, and the photos from repeated "files" parts.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) ([]blobs.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes())

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Content-Type is required")
		return nil, false
	}

	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			handlers.WriteBodyError(w, err, "Invalid request body")
			return nil, false
		}
		return nil, true

	case "multipart/form-data":
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			handlers.WriteBodyError(w, err, "Invalid multipart body")
			return nil, false
		}
		defer func() {
			_ = r.MultipartForm.RemoveAll()
		}()

		if err := decodeFields(r.MultipartForm, dst); err != nil {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
			return nil, false
		}

		headers := r.MultipartForm.File["files"]
		if len(headers) > h.config.MaxFiles {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest",
				fmt.Sprintf("at most %d files per post", h.config.MaxFiles))
			return nil, false
		}

		files := make([]blobs.File, 0, len(headers))
		for _, fh := range headers {
			file, err := handlers.ReadFile(fh, h.config.MaxUploadBytes)
			if err != nil {
				handlers.WriteBodyError(w, err, "Invalid file part")
				return nil, false
			}
			files = append(files, file)
		}
		return files, true

	default:
		handlers.WriteError(w, http.StatusUnsupportedMediaType, "UnsupportedMediaType",
			"Expected application/json or multipart/form-data")
		return nil, false
	}
}

// decodeFields reads the "post" JSON part when present, otherwise the named
// form fields. Both request types share the same JSON field names.
func decodeFields(form *multipart.Form, dst interface{}) error {
	if raw := form.Value["post"]; len(raw) > 0 {
		if err := json.Unmarshal([]byte(raw[0]), dst); err != nil {
			return errors.New("post part is not valid JSON")
		}
		return nil
	}

	fields := map[string]interface{}{}
	for _, name := range []string{"title", "detail", "location", "hashtag", "startDate", "endDate"} {
		if v := form.Value[name]; len(v) > 0 {
			fields[name] = v[0]
		}
	}
	if v := form.Value["themeId"]; len(v) > 0 {
		id, err := strconv.ParseInt(strings.TrimSpace(v[0]), 10, 64)
		if err != nil {
			return errors.New("themeId must be an integer")
		}
		fields["themeId"] = id
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
