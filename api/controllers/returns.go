package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/middleware"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/responses"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/validators"
	returnsvc "github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/returns"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/logger"
)

type initiateReturnRequest struct {
	OrderID     int64  `json:"orderId" validate:"required,gt=0"`
	OrderItemID int64  `json:"orderItemId" validate:"required,gt=0"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
	Reason      string `json:"reason" validate:"required"`
}

type advanceReturnRequest struct {
	Status         string           `json:"status" validate:"required"`
	RefundAmount   *decimal.Decimal `json:"refundAmount"`
	TrackingNumber *string          `json:"trackingNumber"`
	Notes          *string          `json:"notes"`
}

// InitiateReturn opens a return for a delivered order.
func InitiateReturn(svc returnsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload initiateReturnRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ret, err := svc.Initiate(r.Context(), userID, returnsvc.InitiateInput{
			OrderID:     payload.OrderID,
			OrderItemID: payload.OrderItemID,
			Quantity:    payload.Quantity,
			Reason:      payload.Reason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, ret)
	}
}

// GetReturn serves one return by its public id.
func GetReturn(svc returnsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		returnID := chi.URLParam(r, "returnId")
		if returnID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "return id is required"))
			return
		}

		isAdmin := middleware.RoleFromContext(r.Context()) == enums.UserRoleAdmin.String()
		ret, err := svc.Get(r.Context(), userID, isAdmin, returnID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ret)
	}
}

// ListMyReturns pages the caller's returns.
func ListMyReturns(svc returnsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), userID, r.URL.Query().Get("status"), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AdminListReturns pages all returns, optionally filtered by status.
func AdminListReturns(svc returnsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), 0, r.URL.Query().Get("status"), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AdminAdvanceReturn moves a return through its workflow.
func AdminAdvanceReturn(svc returnsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		returnID := chi.URLParam(r, "returnId")
		if returnID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "return id is required"))
			return
		}

		var payload advanceReturnRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseReturnStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid return status"))
			return
		}

		ret, err := svc.Advance(r.Context(), returnID, returnsvc.AdvanceInput{
			Status:         status,
			RefundAmount:   payload.RefundAmount,
			TrackingNumber: payload.TrackingNumber,
			Notes:          payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ret)
	}
}

// CancelReturn lets a customer withdraw a return before quality check.
func CancelReturn(svc returnsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		returnID := chi.URLParam(r, "returnId")
		if returnID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "return id is required"))
			return
		}

		ret, err := svc.Cancel(r.Context(), userID, returnID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ret)
	}
}
