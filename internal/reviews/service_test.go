package reviews

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/pagination"
)

type stubReviewRepo struct {
	review    *models.Review
	created   *models.Review
	createErr error
	listRows  []models.Review
	listTotal int64
	aggCount  int64
	aggAvg    float64
	statuses   map[int64]string
	adminReply *string
	deleted    []int64
}

func (s *stubReviewRepo) Create(_ context.Context, review *models.Review) (*models.Review, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	review.ID = 7
	s.created = review
	return review, nil
}

func (s *stubReviewRepo) FindByID(_ context.Context, id int64) (*models.Review, error) {
	if s.review == nil || s.review.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.review, nil
}

func (s *stubReviewRepo) ListApproved(_ context.Context, _ int64, _ pagination.Params) ([]models.Review, int64, error) {
	return s.listRows, s.listTotal, nil
}

func (s *stubReviewRepo) Aggregate(_ context.Context, _ int64) (int64, float64, error) {
	return s.aggCount, s.aggAvg, nil
}

func (s *stubReviewRepo) Moderate(_ context.Context, id int64, status string, adminReply *string) error {
	if s.statuses == nil {
		s.statuses = map[int64]string{}
	}
	s.statuses[id] = status
	s.adminReply = adminReply
	return nil
}

func (s *stubReviewRepo) Delete(_ context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func strPtr(s string) *string { return &s }

func TestSubmitStoresPendingReview(t *testing.T) {
	repo := &stubReviewRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	dto, err := svc.Submit(context.Background(), 42, SubmitInput{
		ProductID: 9,
		Rating:    4,
		Title:     strPtr("Solid"),
		Comment:   strPtr("Does what it says."),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if dto.Status != enums.ReviewStatusPending {
		t.Fatalf("status = %q, want pending", dto.Status)
	}
	if repo.created.UserID != 42 || repo.created.ProductID != 9 || repo.created.Rating != 4 {
		t.Fatalf("stored review = %+v", repo.created)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc, _ := NewService(&stubReviewRepo{})

	cases := []struct {
		name   string
		userID int64
		input  SubmitInput
	}{
		{"missing user", 0, SubmitInput{ProductID: 1, Rating: 3}},
		{"missing product", 10, SubmitInput{Rating: 3}},
		{"rating too low", 10, SubmitInput{ProductID: 1, Rating: 0}},
		{"rating too high", 10, SubmitInput{ProductID: 1, Rating: 6}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tc.userID, tc.input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("err = %v, want validation error", err)
			}
		})
	}
}

func TestSubmitDuplicateIsConflict(t *testing.T) {
	repo := &stubReviewRepo{
		createErr: &pgconn.PgError{Code: "23505", ConstraintName: "idx_reviews_user_product"},
	}
	svc, _ := NewService(repo)

	_, err := svc.Submit(context.Background(), 42, SubmitInput{ProductID: 9, Rating: 5})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestListForProductBuildsEnvelope(t *testing.T) {
	repo := &stubReviewRepo{
		listRows: []models.Review{
			{ID: 1, ProductID: 9, UserID: 1, Rating: 5, Status: enums.ReviewStatusApproved, User: &models.User{FullName: "Asha Rao"}},
			{ID: 2, ProductID: 9, UserID: 2, Rating: 4, Status: enums.ReviewStatusApproved},
		},
		listTotal: 12,
		aggCount:  12,
		aggAvg:    4.25,
	}
	svc, _ := NewService(repo)

	result, err := svc.ListForProduct(context.Background(), 9, pagination.Params{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("ListForProduct: %v", err)
	}
	if len(result.Reviews) != 2 {
		t.Fatalf("reviews = %d, want 2", len(result.Reviews))
	}
	if result.Reviews[0].UserName != "Asha Rao" {
		t.Fatalf("userName = %q", result.Reviews[0].UserName)
	}
	if result.Summary.ReviewCount != 12 || result.Summary.AverageRating != 4.25 {
		t.Fatalf("summary = %+v", result.Summary)
	}
	if result.Pagination.Page != 2 || result.Pagination.Total != 12 || result.Pagination.Pages != 2 {
		t.Fatalf("pagination = %+v", result.Pagination)
	}
}

func TestModerateApproves(t *testing.T) {
	repo := &stubReviewRepo{
		review: &models.Review{ID: 5, ProductID: 9, UserID: 42, Rating: 3, Status: enums.ReviewStatusPending},
	}
	svc, _ := NewService(repo)

	dto, err := svc.Moderate(context.Background(), 5, ModerateInput{
		Status:     enums.ReviewStatusApproved,
		AdminReply: strPtr("thanks for the feedback"),
	})
	if err != nil {
		t.Fatalf("Moderate: %v", err)
	}
	if dto.Status != enums.ReviewStatusApproved {
		t.Fatalf("status = %q", dto.Status)
	}
	if repo.statuses[5] != "approved" {
		t.Fatalf("persisted status = %q", repo.statuses[5])
	}
	if repo.adminReply == nil || *repo.adminReply != "thanks for the feedback" {
		t.Fatalf("adminReply = %v", repo.adminReply)
	}
}

func TestModerateRejectsPendingTarget(t *testing.T) {
	svc, _ := NewService(&stubReviewRepo{})

	_, err := svc.Moderate(context.Background(), 5, ModerateInput{Status: enums.ReviewStatusPending})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestModerateMissingReview(t *testing.T) {
	svc, _ := NewService(&stubReviewRepo{})

	_, err := svc.Moderate(context.Background(), 99, ModerateInput{Status: enums.ReviewStatusApproved})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestDeleteOwnership(t *testing.T) {
	repo := &stubReviewRepo{
		review: &models.Review{ID: 5, ProductID: 9, UserID: 42, Rating: 3},
	}
	svc, _ := NewService(repo)

	err := svc.Delete(context.Background(), 7, false, 5)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("err = %v, want forbidden", err)
	}

	if err := svc.Delete(context.Background(), 7, true, 5); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != 5 {
		t.Fatalf("deleted = %v", repo.deleted)
	}
}
