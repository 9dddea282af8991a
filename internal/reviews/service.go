package reviews

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
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/pagination"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/types"
)

// ReviewDTO is the review read model.
type ReviewDTO struct {
	ID                   int64              `json:"id"`
	ProductID            int64              `json:"productId"`
	UserID               int64              `json:"userId"`
	UserName             string             `json:"userName,omitempty"`
	OrderID              *int64             `json:"orderId,omitempty"`
	Rating               int                `json:"rating"`
	Title                *string            `json:"title,omitempty"`
	Comment              *string            `json:"comment,omitempty"`
	ProductQualityRating *int               `json:"productQualityRating,omitempty"`
	ShippingRating       *int               `json:"shippingRating,omitempty"`
	SellerRating         *int               `json:"sellerRating,omitempty"`
	Status               enums.ReviewStatus `json:"status"`
	AdminReply           *string            `json:"adminReply,omitempty"`
	CreatedAt            time.Time          `json:"createdAt"`
}

// Summary aggregates approved ratings for one product.
type Summary struct {
	ProductID     int64   `json:"productId"`
	ReviewCount   int64   `json:"reviewCount"`
	AverageRating float64 `json:"averageRating"`
}

// ListResult is one page of approved reviews plus its pagination envelope.
type ListResult struct {
	Reviews    []ReviewDTO      `json:"reviews"`
	Summary    Summary          `json:"summary"`
	Pagination types.Pagination `json:"pagination"`
}

// SubmitInput is the payload to post a review. Sub-ratings are optional
// facet scores alongside the overall rating.
type SubmitInput struct {
	ProductID            int64
	OrderID              *int64
	Rating               int
	Title                *string
	Comment              *string
	ProductQualityRating *int
	ShippingRating       *int
	SellerRating         *int
}

// ModerateInput settles a pending review, optionally with a public reply.
type ModerateInput struct {
	Status     enums.ReviewStatus
	AdminReply *string
}

// Service exposes customer review submission and moderation.
type Service interface {
	Submit(ctx context.Context, userID int64, input SubmitInput) (*ReviewDTO, error)
	ListForProduct(ctx context.Context, productID int64, params pagination.Params) (*ListResult, error)
	Moderate(ctx context.Context, reviewID int64, input ModerateInput) (*ReviewDTO, error)
	Delete(ctx context.Context, userID int64, isAdmin bool, reviewID int64) error
}

type reviewRepo interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	FindByID(ctx context.Context, id int64) (*models.Review, error)
	ListApproved(ctx context.Context, productID int64, params pagination.Params) ([]models.Review, int64, error)
	Aggregate(ctx context.Context, productID int64) (int64, float64, error)
	Moderate(ctx context.Context, id int64, status string, adminReply *string) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo reviewRepo
}

// NewService builds a review service backed by the provided repository.
func NewService(repo reviewRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository required")
	}
	return &service{repo: repo}, nil
}

// Submit stores a pending review. One review per user and product; a second
// submission is a conflict, not an update.
func (s *service) Submit(ctx context.Context, userID int64, input SubmitInput) (*ReviewDTO, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	for _, sub := range []*int{input.ProductQualityRating, input.ShippingRating, input.SellerRating} {
		if sub != nil && (*sub < 1 || *sub > 5) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sub-ratings must be between 1 and 5")
		}
	}
	if input.Comment != nil && strings.TrimSpace(*input.Comment) == "" {
		input.Comment = nil
	}

	created, err := s.repo.Create(ctx, &models.Review{
		ProductID:            input.ProductID,
		UserID:               userID,
		OrderID:              input.OrderID,
		Rating:               input.Rating,
		Title:                input.Title,
		Comment:              input.Comment,
		ProductQualityRating: input.ProductQualityRating,
		ShippingRating:       input.ShippingRating,
		SellerRating:         input.SellerRating,
		Status:               enums.ReviewStatusPending,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_reviews_user_product") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "you have already reviewed this product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating review")
	}
	return toDTO(created), nil
}

// ListForProduct returns approved reviews only, newest first, plus the
// aggregate over all approved reviews.
func (s *service) ListForProduct(ctx context.Context, productID int64, params pagination.Params) (*ListResult, error) {
	if productID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	rows, total, err := s.repo.ListApproved(ctx, productID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing reviews")
	}
	count, avg, err := s.repo.Aggregate(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregating reviews")
	}

	normalized := params.Normalize()
	result := &ListResult{
		Reviews: make([]ReviewDTO, 0, len(rows)),
		Summary: Summary{ProductID: productID, ReviewCount: count, AverageRating: avg},
	}
	for i := range rows {
		result.Reviews = append(result.Reviews, *toDTO(&rows[i]))
	}
	result.Pagination.Page = int64(normalized.Page)
	result.Pagination.Limit = int64(normalized.Limit)
	result.Pagination.Total = total
	result.Pagination.Pages = pagination.Pages(total, normalized.Limit)
	return result, nil
}

// Moderate approves or rejects a pending review, optionally attaching a
// public admin reply.
func (s *service) Moderate(ctx context.Context, reviewID int64, input ModerateInput) (*ReviewDTO, error) {
	if reviewID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}
	if input.Status != enums.ReviewStatusApproved && input.Status != enums.ReviewStatusRejected {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be approved or rejected")
	}

	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading review")
	}

	if err := s.repo.Moderate(ctx, reviewID, input.Status.String(), input.AdminReply); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "moderating review")
	}
	review.Status = input.Status
	if input.AdminReply != nil {
		review.AdminReply = input.AdminReply
	}
	return toDTO(review), nil
}

func (s *service) Delete(ctx context.Context, userID int64, isAdmin bool, reviewID int64) error {
	if reviewID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading review")
	}
	if !isAdmin && review.UserID != userID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "you may only delete your own reviews")
	}
	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting review")
	}
	return nil
}

func toDTO(r *models.Review) *ReviewDTO {
	dto := &ReviewDTO{
		ID:                   r.ID,
		ProductID:            r.ProductID,
		UserID:               r.UserID,
		OrderID:              r.OrderID,
		Rating:               r.Rating,
		Title:                r.Title,
		Comment:              r.Comment,
		ProductQualityRating: r.ProductQualityRating,
		ShippingRating:       r.ShippingRating,
		SellerRating:         r.SellerRating,
		Status:               r.Status,
		AdminReply:           r.AdminReply,
		CreatedAt:            r.CreatedAt,
	}
	if r.User != nil {
		dto.UserName = r.User.FullName
	}
	return dto
}
