package controllers

import (
	"net/http"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/middleware"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/responses"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/validators"
	reviewsvc "github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/reviews"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/logger"
)

type submitReviewRequest struct {
	ProductID            int64   `json:"productId" validate:"required,gt=0"`
	OrderID              *int64  `json:"orderId" validate:"omitempty,gt=0"`
	Rating               int     `json:"rating" validate:"required,min=1,max=5"`
	Title                *string `json:"title"`
	Comment              *string `json:"comment"`
	ProductQualityRating *int    `json:"productQualityRating" validate:"omitempty,min=1,max=5"`
	ShippingRating       *int    `json:"shippingRating" validate:"omitempty,min=1,max=5"`
	SellerRating         *int    `json:"sellerRating" validate:"omitempty,min=1,max=5"`
}

type moderateReviewRequest struct {
	Status     string  `json:"status" validate:"required,oneof=approved rejected"`
	AdminReply *string `json:"adminReply"`
}

// SubmitReview records a customer review for moderation.
func SubmitReview(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload submitReviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		review, err := svc.Submit(r.Context(), userID, reviewsvc.SubmitInput{
			ProductID:            payload.ProductID,
			OrderID:              payload.OrderID,
			Rating:               payload.Rating,
			Title:                payload.Title,
			Comment:              payload.Comment,
			ProductQualityRating: payload.ProductQualityRating,
			ShippingRating:       payload.ShippingRating,
			SellerRating:         payload.SellerRating,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}

// ListProductReviews pages approved reviews with the product's rating summary.
func ListProductReviews(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := pathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListForProduct(r.Context(), productID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AdminModerateReview approves or rejects a pending review.
func AdminModerateReview(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload moderateReviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseReviewStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid review status"))
			return
		}

		review, err := svc.Moderate(r.Context(), id, reviewsvc.ModerateInput{
			Status:     status,
			AdminReply: payload.AdminReply,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, review)
	}
}

// DeleteReview removes a review. Admins can delete any, customers their own.
func DeleteReview(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		isAdmin := middleware.RoleFromContext(r.Context()) == enums.UserRoleAdmin.String()
		if err := svc.Delete(r.Context(), userID, isAdmin, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
