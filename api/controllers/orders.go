package controllers

import (
	"net/http"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/middleware"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/responses"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/validators"
	ordersvc "github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/orders"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/logger"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/types"
)

type addressPayload struct {
	Name    string `json:"name" validate:"required"`
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode" validate:"required"`
	Country string `json:"country" validate:"required"`
}

type checkoutRequest struct {
	PaymentMethod   string          `json:"paymentMethod" validate:"required"`
	ShippingAddress addressPayload  `json:"shippingAddress" validate:"required"`
	BillingAddress  *addressPayload `json:"billingAddress"`
	Notes           *string         `json:"notes"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Checkout converts the shopper's cart into an order.
func Checkout(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopperID, err := shopperFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ordersvc.CreateInput{
			ShopperID:       shopperID,
			PaymentMethod:   payload.PaymentMethod,
			ShippingAddress: toAddress(&payload.ShippingAddress),
			BillingAddress:  toAddress(payload.BillingAddress),
			Notes:           payload.Notes,
		}

		order, err := svc.CreateFromCart(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// ListMyOrders pages the caller's order history.
func ListMyOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		result, err := svc.ListByUser(r.Context(), userID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetOrder serves one order. Customers only see their own.
func GetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		order, err := svc.GetByID(r.Context(), userID, isAdmin, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// AdminUpdateOrderStatus moves an order through fulfillment.
func AdminUpdateOrderStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status"))
			return
		}

		order, err := svc.UpdateStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func userFromContext(r *http.Request) (int64, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return userID, nil
}

func toAddress(p *addressPayload) *types.Address {
	if p == nil {
		return nil
	}
	return &types.Address{
		Name:    p.Name,
		Street:  p.Street,
		City:    p.City,
		State:   p.State,
		ZipCode: p.ZipCode,
		Country: p.Country,
	}
}
