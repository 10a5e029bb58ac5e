package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"Compass/internal/core/blobs"
	"Compass/internal/core/text"
)

const maxNicknameLength = 30

type userService struct {
	userRepo UserRepository
	blobs    blobs.Service
}

// NewUserService creates a new user service. blobService may be nil when
// profile images are never uploaded (the seeder).
func NewUserService(userRepo UserRepository, blobService blobs.Service) UserService {
	return &userService{
		userRepo: userRepo,
		blobs:    blobService,
	}
}

// CreateUser creates a new user. Used by the seeder and by account provisioning.
func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Nickname = strings.TrimSpace(req.Nickname)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	user := &User{
		Email:           req.Email,
		Nickname:        req.Nickname,
		ProfileImageURL: req.ProfileImageURL,
	}

	// Repository will handle duplicate constraint errors
	return s.userRepo.Create(ctx, user)
}

// GetUserByID retrieves a user by id
func (s *userService) GetUserByID(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, ErrUserNotFound
	}

	return s.userRepo.GetByID(ctx, id)
}

// GetProfile returns the user together with their activity counters
func (s *userService) GetProfile(ctx context.Context, id int64) (*ProfileView, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stats, err := s.userRepo.GetProfileStats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile stats: %w", err)
	}

	return &ProfileView{
		ID:              user.ID,
		Email:           user.Email,
		Nickname:        user.Nickname,
		ProfileImageURL: user.ProfileImageURL,
		CreatedAt:       user.CreatedAt,
		Stats:           stats,
	}, nil
}

// UpdateProfile edits nickname and, when image is given, the profile image.
// The image is stored before the row is written; a failed write leaves an
// unreferenced blob behind.
func (s *userService) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest, image *blobs.File) (*ProfileView, error) {
	nickname := strings.TrimSpace(req.Nickname)
	if err := validateNickname(nickname); err != nil {
		return nil, err
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if image != nil {
		if s.blobs == nil {
			return nil, &ProfileImageError{Err: errors.New("image uploads are not configured")}
		}
		blob, err := s.blobs.Upload(ctx, userID, *image)
		if err != nil {
			slog.Warn("[USER-UPDATE] profile image upload failed", "user_id", userID, "error", err)
			return nil, &ProfileImageError{Err: err}
		}
		user.ProfileImageURL = &blob.URL
	}

	user.Nickname = nickname
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("[USER-UPDATE] profile updated", "user_id", userID, "image_changed", image != nil)
	return s.GetProfile(ctx, userID)
}

func (s *userService) validateCreateRequest(req CreateUserRequest) error {
	if req.Email == "" {
		return &InvalidEmailError{Email: req.Email}
	}

	addr, err := mail.ParseAddress(req.Email)
	if err != nil || addr.Address != req.Email {
		return &InvalidEmailError{Email: req.Email}
	}

	return validateNickname(req.Nickname)
}

func validateNickname(nickname string) error {
	if nickname == "" {
		return &InvalidNicknameError{Nickname: nickname, Reason: "nickname is required"}
	}

	// Nicknames are often Korean, count user-perceived characters
	if text.Length(nickname) > maxNicknameLength {
		return &InvalidNicknameError{
			Nickname: nickname,
			Reason:   fmt.Sprintf("must be at most %d characters", maxNicknameLength),
		}
	}

	return nil
}
