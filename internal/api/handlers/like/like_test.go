package like

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"Compass/internal/api/middleware"
	"Compass/internal/core/likes"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// mockLikeService tracks liked state per (user, post)
type mockLikeService struct {
	liked map[[2]int64]bool
	err   error
}

func (m *mockLikeService) set(userID, postID int64, liked bool) (*likes.ToggleLikeResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.liked[[2]int64{userID, postID}] = liked
	count := 0
	for k, v := range m.liked {
		if v && k[1] == postID {
			count++
		}
	}
	return &likes.ToggleLikeResponse{Liked: liked, LikeCount: count}, nil
}

func (m *mockLikeService) ToggleLike(ctx context.Context, userID, postID int64) (*likes.ToggleLikeResponse, error) {
	return m.set(userID, postID, !m.liked[[2]int64{userID, postID}])
}

func (m *mockLikeService) LikePost(ctx context.Context, userID, postID int64) (*likes.ToggleLikeResponse, error) {
	return m.set(userID, postID, true)
}

func (m *mockLikeService) UnlikePost(ctx context.Context, userID, postID int64) (*likes.ToggleLikeResponse, error) {
	return m.set(userID, postID, false)
}

func newRouter(svc likes.Service, userID int64) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if userID != 0 {
				req = req.WithContext(middleware.SetTestUserID(req.Context(), userID))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Post("/api/posts/{postID}/like", h.HandleToggle)
	r.Put("/api/posts/{postID}/like", h.HandleLike)
	r.Delete("/api/posts/{postID}/like", h.HandleUnlike)
	return r
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestToggleTwiceRestoresState(t *testing.T) {
	h := newRouter(&mockLikeService{liked: map[[2]int64]bool{}}, 3)

	w := do(h, http.MethodPost, "/api/posts/9/like")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"liked":true,"likeCount":1}`, w.Body.String())

	w = do(h, http.MethodPost, "/api/posts/9/like")
	assert.JSONEq(t, `{"liked":false,"likeCount":0}`, w.Body.String())
}

func TestLikeAndUnlikeAreIdempotent(t *testing.T) {
	h := newRouter(&mockLikeService{liked: map[[2]int64]bool{}}, 3)

	do(h, http.MethodPut, "/api/posts/9/like")
	w := do(h, http.MethodPut, "/api/posts/9/like")
	assert.JSONEq(t, `{"liked":true,"likeCount":1}`, w.Body.String())

	do(h, http.MethodDelete, "/api/posts/9/like")
	w = do(h, http.MethodDelete, "/api/posts/9/like")
	assert.JSONEq(t, `{"liked":false,"likeCount":0}`, w.Body.String())
}

func TestLikeErrors(t *testing.T) {
	tests := []struct {
		name       string
		userID     int64
		target     string
		err        error
		wantStatus int
	}{
		{"no auth", 0, "/api/posts/1/like", nil, http.StatusUnauthorized},
		{"bad id", 1, "/api/posts/zero/like", nil, http.StatusBadRequest},
		{"post missing", 1, "/api/posts/1/like", likes.ErrPostNotFound, http.StatusNotFound},
		{"user missing", 1, "/api/posts/1/like", likes.ErrUserNotFound, http.StatusNotFound},
		{"validation", 1, "/api/posts/1/like", likes.NewValidationError("postId", "bad"), http.StatusBadRequest},
		{"unexpected", 1, "/api/posts/1/like", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newRouter(&mockLikeService{liked: map[[2]int64]bool{}, err: tt.err}, tt.userID)
			assert.Equal(t, tt.wantStatus, do(h, http.MethodPost, tt.target).Code)
		})
	}
}
