package user

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Compass/internal/api/middleware"
	"Compass/internal/core/blobs"
	"Compass/internal/core/themeFeeds"
	"Compass/internal/core/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserService struct {
	profile   *users.ProfileView
	err       error
	gotReq    users.UpdateProfileRequest
	gotImage  *blobs.File
	updateErr error
}

func (m *mockUserService) CreateUser(ctx context.Context, req users.CreateUserRequest) (*users.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserService) GetUserByID(ctx context.Context, id int64) (*users.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserService) GetProfile(ctx context.Context, id int64) (*users.ProfileView, error) {
	return m.profile, m.err
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID int64, req users.UpdateProfileRequest, image *blobs.File) (*users.ProfileView, error) {
	m.gotReq = req
	m.gotImage = image
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return &users.ProfileView{ID: userID, Nickname: req.Nickname}, nil
}

type mockFeedService struct {
	got themeFeeds.GetLikedFeedRequest
	err error
}

func (m *mockFeedService) GetThemeFeed(ctx context.Context, req themeFeeds.GetThemeFeedRequest) (*themeFeeds.FeedResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockFeedService) GetLikedFeed(ctx context.Context, req themeFeeds.GetLikedFeedRequest) (*themeFeeds.FeedResponse, error) {
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	return &themeFeeds.FeedResponse{Feed: []*themeFeeds.PostSummary{{ID: 3, Title: "Seoul"}}}, nil
}

func authed(r *http.Request, userID int64) *http.Request {
	return r.WithContext(middleware.SetTestUserID(r.Context(), userID))
}

func TestHandleMe(t *testing.T) {
	svc := &mockUserService{profile: &users.ProfileView{ID: 6, Nickname: "mina", Stats: &users.ProfileStats{PostCount: 2}}}
	h := NewHandler(svc, &mockFeedService{}, 0)

	w := httptest.NewRecorder()
	h.HandleMe(w, authed(httptest.NewRequest(http.MethodGet, "/api/users/me", nil), 6))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"nickname":"mina"`)
	assert.Contains(t, w.Body.String(), `"postCount":2`)

	w = httptest.NewRecorder()
	h.HandleMe(w, httptest.NewRequest(http.MethodGet, "/api/users/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	svc.err = users.ErrUserNotFound
	w = httptest.NewRecorder()
	h.HandleMe(w, authed(httptest.NewRequest(http.MethodGet, "/api/users/me", nil), 6))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleLikedFeed(t *testing.T) {
	feeds := &mockFeedService{}
	h := NewHandler(&mockUserService{}, feeds, 0)

	w := httptest.NewRecorder()
	h.HandleLikedFeed(w, authed(httptest.NewRequest(http.MethodGet, "/api/users/me/likes?limit=5", nil), 6))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(6), feeds.got.UserID)
	assert.Equal(t, 5, feeds.got.Limit)
	assert.Nil(t, feeds.got.Cursor)
	assert.Contains(t, w.Body.String(), `"title":"Seoul"`)

	feeds.err = themeFeeds.NewValidationError("cursor", "bad")
	w = httptest.NewRecorder()
	h.HandleLikedFeed(w, authed(httptest.NewRequest(http.MethodGet, "/api/users/me/likes", nil), 6))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleUpdateMe_JSON(t *testing.T) {
	svc := &mockUserService{}
	h := NewHandler(svc, &mockFeedService{}, 0)

	req := httptest.NewRequest(http.MethodPut, "/api/users/me", strings.NewReader(`{"nickname":"mina"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.HandleUpdateMe(w, authed(req, 6))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mina", svc.gotReq.Nickname)
	assert.Nil(t, svc.gotImage)
	assert.Contains(t, w.Body.String(), `"nickname":"mina"`)
}

func TestHandleUpdateMe_MultipartWithImage(t *testing.T) {
	svc := &mockUserService{}
	h := NewHandler(svc, &mockFeedService{}, 0)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("nickname", "여행자"))
	fw, err := mw.CreateFormFile("image", "me.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/users/me", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.HandleUpdateMe(w, authed(req, 6))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "여행자", svc.gotReq.Nickname)
	require.NotNil(t, svc.gotImage)
	assert.Equal(t, "me.jpg", svc.gotImage.Name)
	assert.Equal(t, []byte("jpeg-bytes"), svc.gotImage.Data)
}

func TestHandleUpdateMe_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantType string
	}{
		{"bad nickname", &users.InvalidNicknameError{Reason: "nickname is required"}, http.StatusBadRequest, "InvalidRequest"},
		{"missing user", users.ErrUserNotFound, http.StatusNotFound, "UserNotFound"},
		{"bad image", &users.ProfileImageError{Err: blobs.ErrUnsupportedMimeType}, http.StatusBadRequest, "InvalidImage"},
		{"store down", &users.ProfileImageError{Err: blobs.ErrStoreFailed}, http.StatusBadGateway, "StorageUnavailable"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "InternalServerError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&mockUserService{updateErr: tt.err}, &mockFeedService{}, 0)

			req := httptest.NewRequest(http.MethodPut, "/api/users/me", strings.NewReader(`{"nickname":"x"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			h.HandleUpdateMe(w, authed(req, 6))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), `"error":"`+tt.wantType+`"`)
		})
	}
}

func TestHandleUpdateMe_RequiresAuthAndContentType(t *testing.T) {
	h := NewHandler(&mockUserService{}, &mockFeedService{}, 0)

	w := httptest.NewRecorder()
	h.HandleUpdateMe(w, httptest.NewRequest(http.MethodPut, "/api/users/me", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPut, "/api/users/me", strings.NewReader("nickname=x"))
	req.Header.Set("Content-Type", "text/plain")
	w = httptest.NewRecorder()
	h.HandleUpdateMe(w, authed(req, 6))
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}
