package users

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/security"
)

type stubUserRepo struct {
	user    *models.User
	updated *models.User
	updErr  error
}

func (s *stubUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) Update(_ context.Context, user *models.User) (*models.User, error) {
	if s.updErr != nil {
		return nil, s.updErr
	}
	s.updated = user
	return user, nil
}

func strPtr(s string) *string { return &s }

func seedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return &models.User{
		ID:           42,
		FullName:     "Asha Rao",
		Email:        "asha@example.com",
		PasswordHash: hash,
		Role:         enums.UserRoleCustomer,
		Status:       enums.UserStatusActive,
	}
}

func TestProfileNeverExposesPasswordHash(t *testing.T) {
	repo := &stubUserRepo{user: seedUser(t, "original-pass")}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	dto, err := svc.Profile(context.Background(), 42)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if dto.Email != "asha@example.com" || dto.Role != enums.UserRoleCustomer {
		t.Fatalf("profile = %+v", dto)
	}
}

func TestProfileMissingUser(t *testing.T) {
	svc, _ := NewService(&stubUserRepo{})

	_, err := svc.Profile(context.Background(), 99)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestUpdateProfilePartialFields(t *testing.T) {
	repo := &stubUserRepo{user: seedUser(t, "original-pass")}
	svc, _ := NewService(repo)

	dto, err := svc.UpdateProfile(context.Background(), 42, UpdateProfileInput{
		FullName: strPtr("Asha R."),
		Username: strPtr("  asha  "),
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if dto.FullName != "Asha R." {
		t.Fatalf("fullName = %q", dto.FullName)
	}
	if dto.Username == nil || *dto.Username != "asha" {
		t.Fatalf("username = %v", dto.Username)
	}
	if dto.Email != "asha@example.com" {
		t.Fatalf("email changed: %q", dto.Email)
	}
}

func TestUpdateProfileBlankUsernameClearsIt(t *testing.T) {
	user := seedUser(t, "original-pass")
	user.Username = strPtr("asha")
	repo := &stubUserRepo{user: user}
	svc, _ := NewService(repo)

	dto, err := svc.UpdateProfile(context.Background(), 42, UpdateProfileInput{Username: strPtr("")})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if dto.Username != nil {
		t.Fatalf("username = %v, want nil", dto.Username)
	}
}

func TestUpdateProfileUsernameConflict(t *testing.T) {
	repo := &stubUserRepo{
		user:   seedUser(t, "original-pass"),
		updErr: errDuplicate{},
	}
	svc, _ := NewService(repo)

	_, err := svc.UpdateProfile(context.Background(), 42, UpdateProfileInput{Username: strPtr("taken")})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("err = %v, want conflict", err)
	}
}

type errDuplicate struct{}

func (errDuplicate) Error() string {
	return `duplicate key value violates unique constraint "idx_users_username"`
}

func TestChangePasswordHappyPath(t *testing.T) {
	repo := &stubUserRepo{user: seedUser(t, "original-pass")}
	svc, _ := NewService(repo)

	err := svc.ChangePassword(context.Background(), 42, ChangePasswordInput{
		CurrentPassword: "original-pass",
		NewPassword:     "brand-new-pass",
	})
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	ok, err := security.VerifyPassword("brand-new-pass", repo.updated.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("new password not stored: ok=%v err=%v", ok, err)
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	repo := &stubUserRepo{user: seedUser(t, "original-pass")}
	svc, _ := NewService(repo)

	err := svc.ChangePassword(context.Background(), 42, ChangePasswordInput{
		CurrentPassword: "guess",
		NewPassword:     "brand-new-pass",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}

func TestChangePasswordTooShort(t *testing.T) {
	svc, _ := NewService(&stubUserRepo{user: seedUser(t, "original-pass")})

	err := svc.ChangePassword(context.Background(), 42, ChangePasswordInput{
		CurrentPassword: "original-pass",
		NewPassword:     "short",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}
