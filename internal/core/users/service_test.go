package users

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"Compass/internal/core/blobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *User) (*User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetProfileStats(ctx context.Context, id int64) (*ProfileStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProfileStats), args.Error(1)
}

func TestCreateUser_NormalizesInput(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
		return u.Email == "traveller@example.com" && u.Nickname == "여행자"
	})).Return(&User{ID: 1, Email: "traveller@example.com", Nickname: "여행자"}, nil)

	user, err := service.CreateUser(ctx, CreateUserRequest{
		Email:    "  Traveller@Example.com ",
		Nickname: " 여행자 ",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	repo.AssertExpectations(t)
}

func TestCreateUser_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateUserRequest
		wantErr interface{}
	}{
		{
			name:    "missing email",
			req:     CreateUserRequest{Nickname: "kim"},
			wantErr: &InvalidEmailError{},
		},
		{
			name:    "malformed email",
			req:     CreateUserRequest{Email: "not-an-email", Nickname: "kim"},
			wantErr: &InvalidEmailError{},
		},
		{
			name:    "missing nickname",
			req:     CreateUserRequest{Email: "kim@example.com"},
			wantErr: &InvalidNicknameError{},
		},
		{
			name:    "nickname too long",
			req:     CreateUserRequest{Email: "kim@example.com", Nickname: "abcdefghijklmnopqrstuvwxyzabcdefg"},
			wantErr: &InvalidNicknameError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			service := NewUserService(repo, nil)

			_, err := service.CreateUser(context.Background(), tt.req)
			require.Error(t, err)
			assert.IsType(t, tt.wantErr, err)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateUser_NicknameCountsGraphemes(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, nil)
	ctx := context.Background()
	thirty := strings.Repeat("제", 30)

	repo.On("Create", ctx, mock.Anything).Return(&User{ID: 2, Nickname: thirty}, nil)

	_, err := service.CreateUser(ctx, CreateUserRequest{Email: "jeju@example.com", Nickname: thirty})
	require.NoError(t, err)

	_, err = service.CreateUser(ctx, CreateUserRequest{Email: "jeju@example.com", Nickname: thirty + "주"})
	assert.IsType(t, &InvalidNicknameError{}, err)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestGetProfile(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, nil)
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	repo.On("GetByID", ctx, int64(7)).Return(&User{ID: 7, Email: "a@b.co", Nickname: "a", CreatedAt: created}, nil)
	repo.On("GetProfileStats", ctx, int64(7)).Return(&ProfileStats{PostCount: 3, CommentCount: 2, LikedPostCount: 5}, nil)

	profile, err := service.GetProfile(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), profile.ID)
	assert.Equal(t, created, profile.CreatedAt)
	assert.Equal(t, 3, profile.Stats.PostCount)
	assert.Equal(t, 5, profile.Stats.LikedPostCount)
}

func TestGetUserByID_NonPositiveIsNotFound(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, nil)

	_, err := service.GetUserByID(context.Background(), 0)
	assert.True(t, IsNotFound(err))
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

type mockBlobService struct {
	mock.Mock
}

func (m *mockBlobService) Upload(ctx context.Context, userID int64, file blobs.File) (*blobs.StoredBlob, error) {
	args := m.Called(ctx, userID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blobs.StoredBlob), args.Error(1)
}

func TestUpdateProfile_NicknameOnlyKeepsImage(t *testing.T) {
	repo := new(MockUserRepository)
	blobSvc := new(mockBlobService)
	service := NewUserService(repo, blobSvc)
	ctx := context.Background()
	avatar := "https://cdn.example.com/old.jpg"

	repo.On("GetByID", ctx, int64(4)).Return(&User{ID: 4, Nickname: "old", ProfileImageURL: &avatar}, nil)
	repo.On("UpdateProfile", ctx, mock.MatchedBy(func(u *User) bool {
		return u.Nickname == "새이름" && u.ProfileImageURL != nil && *u.ProfileImageURL == avatar
	})).Return(nil)
	repo.On("GetProfileStats", ctx, int64(4)).Return(&ProfileStats{}, nil)

	profile, err := service.UpdateProfile(ctx, 4, UpdateProfileRequest{Nickname: "  새이름 "}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), profile.ID)
	repo.AssertExpectations(t)
	blobSvc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProfile_UploadsImage(t *testing.T) {
	repo := new(MockUserRepository)
	blobSvc := new(mockBlobService)
	service := NewUserService(repo, blobSvc)
	ctx := context.Background()
	file := blobs.File{Name: "me.png", ContentType: "image/png", Data: []byte("png")}

	repo.On("GetByID", ctx, int64(4)).Return(&User{ID: 4, Nickname: "old"}, nil)
	blobSvc.On("Upload", ctx, int64(4), file).Return(&blobs.StoredBlob{URL: "https://cdn.example.com/new.jpg"}, nil)
	repo.On("UpdateProfile", ctx, mock.MatchedBy(func(u *User) bool {
		return u.ProfileImageURL != nil && *u.ProfileImageURL == "https://cdn.example.com/new.jpg"
	})).Return(nil)
	repo.On("GetProfileStats", ctx, int64(4)).Return(&ProfileStats{}, nil)

	_, err := service.UpdateProfile(ctx, 4, UpdateProfileRequest{Nickname: "mina"}, &file)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	blobSvc.AssertExpectations(t)
}

func TestUpdateProfile_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid nickname", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		_, err := service.UpdateProfile(ctx, 4, UpdateProfileRequest{Nickname: "   "}, nil)
		assert.IsType(t, &InvalidNicknameError{}, err)
		repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)
		repo.On("GetByID", ctx, int64(4)).Return(nil, ErrUserNotFound)

		_, err := service.UpdateProfile(ctx, 4, UpdateProfileRequest{Nickname: "mina"}, nil)
		assert.True(t, IsNotFound(err))
	})

	t.Run("upload failure leaves row untouched", func(t *testing.T) {
		repo := new(MockUserRepository)
		blobSvc := new(mockBlobService)
		service := NewUserService(repo, blobSvc)
		file := blobs.File{Name: "x.gif", ContentType: "image/gif", Data: []byte("gif")}

		repo.On("GetByID", ctx, int64(4)).Return(&User{ID: 4, Nickname: "old"}, nil)
		blobSvc.On("Upload", ctx, int64(4), file).Return(nil, blobs.ErrUnsupportedMimeType)

		_, err := service.UpdateProfile(ctx, 4, UpdateProfileRequest{Nickname: "mina"}, &file)
		var imgErr *ProfileImageError
		require.True(t, errors.As(err, &imgErr))
		assert.ErrorIs(t, err, blobs.ErrUnsupportedMimeType)
		repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	})
}
