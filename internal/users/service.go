package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/security"
)

// ProfileDTO is the user read model. The password hash never leaves the
// service.
type ProfileDTO struct {
	ID        int64            `json:"id"`
	FullName  string           `json:"fullName"`
	Username  *string          `json:"username,omitempty"`
	Email     string           `json:"email"`
	Phone     *string          `json:"phone,omitempty"`
	Role      enums.UserRole   `json:"role"`
	Status    enums.UserStatus `json:"status"`
	Avatar    *string          `json:"avatar,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// UpdateProfileInput carries the editable profile fields. Nil pointers leave
// the stored value untouched.
type UpdateProfileInput struct {
	FullName *string
	Username *string
	Phone    *string
	Avatar   *string
}

// ChangePasswordInput verifies the current password before replacing it.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// Service exposes profile reads and updates for an authenticated user.
type Service interface {
	Profile(ctx context.Context, userID int64) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*ProfileDTO, error)
	ChangePassword(ctx context.Context, userID int64, input ChangePasswordInput) error
}

type userRepo interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
}

type service struct {
	repo userRepo
}

// NewService builds a user service backed by the provided repository.
func NewService(repo userRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Profile(ctx context.Context, userID int64) (*ProfileDTO, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDTO(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*ProfileDTO, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		if strings.TrimSpace(*input.FullName) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name must not be empty")
		}
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Username != nil {
		trimmed := strings.TrimSpace(*input.Username)
		if trimmed == "" {
			user.Username = nil
		} else {
			user.Username = &trimmed
		}
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Avatar != nil {
		user.Avatar = input.Avatar
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username is already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving profile")
	}
	return toDTO(updated), nil
}

// ChangePassword rejects the change unless the caller proves the current
// password first.
func (s *service) ChangePassword(ctx context.Context, userID int64, input ChangePasswordInput) error {
	if len(input.NewPassword) < 8 {
		return pkgerrors.New(pkgerrors.CodeValidation, "new password must be at least 8 characters")
	}
	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := security.VerifyPassword(input.CurrentPassword, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "current password is incorrect")
	}

	hash, err := security.HashPassword(input.NewPassword)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}
	user.PasswordHash = hash
	if _, err := s.repo.Update(ctx, user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving password")
	}
	return nil
}

func (s *service) load(ctx context.Context, userID int64) (*models.User, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	return user, nil
}

func toDTO(user *models.User) *ProfileDTO {
	return &ProfileDTO{
		ID:        user.ID,
		FullName:  user.FullName,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		Status:    user.Status,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	}
}
