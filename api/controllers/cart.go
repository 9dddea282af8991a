package controllers

import (
	"context"
	"net/http"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/middleware"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/responses"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/validators"
	cartsvc "github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/cart"
	productsvc "github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/products"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/logger"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/metrics"
)

// productReader is the slice of the catalog the cart endpoints need to
// freeze price and stock data server side.
type productReader interface {
	GetByID(ctx context.Context, id int64) (*productsvc.ProductDTO, error)
}

type addCartItemRequest struct {
	ProductID          int64             `json:"productId" validate:"required,gt=0"`
	Quantity           int               `json:"quantity"`
	SelectedAttributes map[string]string `json:"selectedAttributes"`
}

type removeCartItemRequest struct {
	ProductID          int64             `json:"productId" validate:"required,gt=0"`
	SelectedAttributes map[string]string `json:"selectedAttributes"`
}

type updateCartItemRequest struct {
	ProductID          int64             `json:"productId" validate:"required,gt=0"`
	Quantity           int               `json:"quantity"`
	SelectedAttributes map[string]string `json:"selectedAttributes"`
}

// CartFetch returns the shopper's current cart state.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopperID, err := shopperFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.Get(r.Context(), shopperID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

// CartAddItem merges a catalog product into the cart. Price, image, and the
// quantity cap come from the catalog, never from the client payload.
func CartAddItem(svc cartsvc.Service, catalog productReader, m *metrics.HTTPMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopperID, err := shopperFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalog.GetByID(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.Add(r.Context(), shopperID, cartsvc.LineInput{
			ProductID:          product.ID,
			Name:               product.Name,
			UnitPrice:          product.Price,
			SalePrice:          product.SalePrice,
			Quantity:           payload.Quantity,
			ImageURL:           primaryImageURL(product),
			ProductType:        product.ProductType,
			StockStatus:        product.StockStatus,
			MaxQuantity:        product.StockQuantity,
			SelectedAttributes: payload.SelectedAttributes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		m.IncCartOp("add")
		responses.WriteSuccess(w, state)
	}
}

// CartRemoveItem drops the exact line; a miss leaves the cart untouched.
func CartRemoveItem(svc cartsvc.Service, m *metrics.HTTPMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopperID, err := shopperFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload removeCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.Remove(r.Context(), shopperID, payload.ProductID, payload.SelectedAttributes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		m.IncCartOp("remove")
		responses.WriteSuccess(w, state)
	}
}

// CartUpdateQuantity sets a line's quantity. Values at or below zero floor to
// one; the cap set at add time still applies.
func CartUpdateQuantity(svc cartsvc.Service, m *metrics.HTTPMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopperID, err := shopperFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.UpdateQuantity(r.Context(), shopperID, payload.ProductID, payload.Quantity, payload.SelectedAttributes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		m.IncCartOp("update_quantity")
		responses.WriteSuccess(w, state)
	}
}

// CartClear empties the cart and erases the persisted slot.
func CartClear(svc cartsvc.Service, m *metrics.HTTPMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopperID, err := shopperFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.Clear(r.Context(), shopperID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		m.IncCartOp("clear")
		responses.WriteSuccess(w, state)
	}
}

// CartToggle flips the drawer visibility flag.
func CartToggle(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartVisibilityHandler(svc.Toggle, logg)
}

// CartOpen opens the drawer.
func CartOpen(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartVisibilityHandler(svc.Open, logg)
}

// CartClose closes the drawer.
func CartClose(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartVisibilityHandler(svc.Close, logg)
}

func cartVisibilityHandler(op func(context.Context, string) (cartsvc.State, error), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopperID, err := shopperFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := op(r.Context(), shopperID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

func shopperFromContext(r *http.Request) (string, error) {
	shopperID := middleware.ShopperIDFromContext(r.Context())
	if shopperID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "shopper identity missing; sign in or send X-Shopper-Id")
	}
	return shopperID, nil
}

func primaryImageURL(product *productsvc.ProductDTO) string {
	for _, img := range product.Images {
		if img.IsPrimary {
			return img.ImageURL
		}
	}
	if len(product.Images) > 0 {
		return product.Images[0].ImageURL
	}
	return ""
}
