package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/responses"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/validators"
	productsvc "github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/products"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/logger"
)

type productImagePayload struct {
	ImageURL  string  `json:"imageUrl" validate:"required"`
	AltText   *string `json:"altText"`
	SortOrder int     `json:"sortOrder"`
	IsPrimary bool    `json:"isPrimary"`
}

type productAttributePayload struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
}

type createProductRequest struct {
	Name             string                    `json:"name" validate:"required"`
	Slug             string                    `json:"slug"`
	SKU              string                    `json:"sku" validate:"required"`
	Description      *string                   `json:"description"`
	ShortDescription *string                   `json:"shortDescription"`
	CategoryID       *int64                    `json:"categoryId"`
	Brand            *string                   `json:"brand"`
	ProductType      string                    `json:"productType"`
	Price            decimal.Decimal           `json:"price"`
	SalePrice        *decimal.Decimal          `json:"salePrice"`
	StockQuantity    int                       `json:"stockQuantity"`
	StockStatus      string                    `json:"stockStatus"`
	Dimensions       *string                   `json:"dimensions"`
	Weight           *decimal.Decimal          `json:"weight"`
	Status           string                    `json:"status"`
	Featured         bool                      `json:"featured"`
	Visibility       string                    `json:"visibility"`
	Images           []productImagePayload     `json:"images"`
	Attributes       []productAttributePayload `json:"attributes"`
}

type updateProductRequest struct {
	Name             *string                   `json:"name"`
	Slug             *string                   `json:"slug"`
	Description      *string                   `json:"description"`
	ShortDescription *string                   `json:"shortDescription"`
	CategoryID       *int64                    `json:"categoryId"`
	Brand            *string                   `json:"brand"`
	ProductType      *string                   `json:"productType"`
	Price            *decimal.Decimal          `json:"price"`
	SalePrice        *decimal.Decimal          `json:"salePrice"`
	ClearSalePrice   bool                      `json:"clearSalePrice"`
	StockQuantity    *int                      `json:"stockQuantity"`
	StockStatus      *string                   `json:"stockStatus"`
	Dimensions       *string                   `json:"dimensions"`
	Weight           *decimal.Decimal          `json:"weight"`
	Status           *string                   `json:"status"`
	Featured         *bool                     `json:"featured"`
	Visibility       *string                   `json:"visibility"`
	Images           []productImagePayload     `json:"images"`
	Attributes       []productAttributePayload `json:"attributes"`
}

// ListProducts serves the public catalog with filters from the query string.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters, err := parseProductFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), productsvc.ListInput{Filters: filters, Pagination: params})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetProductBySlug serves a single catalog entry.
func GetProductBySlug(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		product, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminCreateProduct handles back-office product creation.
func AdminCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminUpdateProduct applies a partial edit to a catalog entry.
func AdminUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminDeleteProduct removes a catalog entry.
func AdminDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

func (p createProductRequest) toCreateInput() (productsvc.CreateInput, error) {
	input := productsvc.CreateInput{
		Name:             p.Name,
		Slug:             p.Slug,
		SKU:              p.SKU,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		CategoryID:       p.CategoryID,
		Brand:            p.Brand,
		Price:            p.Price,
		SalePrice:        p.SalePrice,
		StockQuantity:    p.StockQuantity,
		Dimensions:       p.Dimensions,
		Weight:           p.Weight,
		Featured:         p.Featured,
	}

	var err error
	if input.ProductType, err = parseOptional(p.ProductType, enums.ParseProductType, enums.ProductTypeHardware); err != nil {
		return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product type")
	}
	if input.StockStatus, err = parseOptional(p.StockStatus, enums.ParseStockStatus, enums.StockStatusInStock); err != nil {
		return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid stock status")
	}
	if input.Status, err = parseOptional(p.Status, enums.ParseProductStatus, enums.ProductStatusActive); err != nil {
		return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product status")
	}
	if input.Visibility, err = parseOptional(p.Visibility, enums.ParseProductVisibility, enums.ProductVisibilityPublic); err != nil {
		return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid visibility")
	}

	input.Images = imageInputs(p.Images)
	input.Attributes = attributeInputs(p.Attributes)
	return input, nil
}

func (p updateProductRequest) toUpdateInput() (productsvc.UpdateInput, error) {
	input := productsvc.UpdateInput{
		Name:             p.Name,
		Slug:             p.Slug,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		CategoryID:       p.CategoryID,
		Brand:            p.Brand,
		Price:            p.Price,
		SalePrice:        p.SalePrice,
		ClearSalePrice:   p.ClearSalePrice,
		StockQuantity:    p.StockQuantity,
		Dimensions:       p.Dimensions,
		Weight:           p.Weight,
		Featured:         p.Featured,
		Images:           imageInputs(p.Images),
		Attributes:       attributeInputs(p.Attributes),
	}

	if p.ProductType != nil {
		parsed, err := enums.ParseProductType(*p.ProductType)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product type")
		}
		input.ProductType = &parsed
	}
	if p.StockStatus != nil {
		parsed, err := enums.ParseStockStatus(*p.StockStatus)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid stock status")
		}
		input.StockStatus = &parsed
	}
	if p.Status != nil {
		parsed, err := enums.ParseProductStatus(*p.Status)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product status")
		}
		input.Status = &parsed
	}
	if p.Visibility != nil {
		parsed, err := enums.ParseProductVisibility(*p.Visibility)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid visibility")
		}
		input.Visibility = &parsed
	}
	return input, nil
}

func imageInputs(payloads []productImagePayload) []productsvc.ImageInput {
	if payloads == nil {
		return nil
	}
	out := make([]productsvc.ImageInput, 0, len(payloads))
	for _, img := range payloads {
		out = append(out, productsvc.ImageInput{
			ImageURL:  img.ImageURL,
			AltText:   img.AltText,
			SortOrder: img.SortOrder,
			IsPrimary: img.IsPrimary,
		})
	}
	return out
}

func attributeInputs(payloads []productAttributePayload) []productsvc.AttributeInput {
	if payloads == nil {
		return nil
	}
	out := make([]productsvc.AttributeInput, 0, len(payloads))
	for _, attr := range payloads {
		out = append(out, productsvc.AttributeInput{Name: attr.Name, Value: attr.Value})
	}
	return out
}

func parseProductFilters(r *http.Request) (productsvc.ListFilters, error) {
	q := r.URL.Query()
	filters := productsvc.ListFilters{
		Search: strings.TrimSpace(q.Get("q")),
		Brand:  strings.TrimSpace(q.Get("brand")),
		SortBy: strings.TrimSpace(q.Get("sort")),
	}

	if raw := q.Get("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "categoryId must be numeric")
		}
		filters.CategoryID = &id
	}
	if raw := q.Get("type"); raw != "" {
		parsed, err := enums.ParseProductType(raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid type filter")
		}
		filters.ProductType = &parsed
	}
	if raw := q.Get("stockStatus"); raw != "" {
		parsed, err := enums.ParseStockStatus(raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid stockStatus filter")
		}
		filters.StockStatus = &parsed
	}
	if raw := q.Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "featured must be a boolean")
		}
		filters.Featured = &featured
	}
	if raw := q.Get("minPrice"); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "minPrice must be a decimal")
		}
		filters.MinPrice = &value
	}
	if raw := q.Get("maxPrice"); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "maxPrice must be a decimal")
		}
		filters.MaxPrice = &value
	}
	return filters, nil
}

func parseOptional[T any](raw string, parse func(string) (T, error), fallback T) (T, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return parse(raw)
}

func pathID(r *http.Request, key string) (int64, error) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path id must be a positive integer")
	}
	return id, nil
}
