package products

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/pagination"
)

// Service exposes catalog read and management operations.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListResult, error)
	GetByID(ctx context.Context, id int64) (*ProductDTO, error)
	GetBySlug(ctx context.Context, slug string) (*ProductDTO, error)
	Create(ctx context.Context, input CreateInput) (*ProductDTO, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*ProductDTO, error)
	Delete(ctx context.Context, id int64) error
}

type productRepo interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	List(ctx context.Context, input ListInput) ([]models.Product, int64, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
	ReplaceImages(ctx context.Context, productID int64, images []models.ProductImage) error
	ReplaceAttributes(ctx context.Context, productID int64, attrs []models.ProductAttribute) error
}

type service struct {
	repo productRepo
}

// NewService builds a product service backed by the provided repository.
func NewService(repo productRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

// CreateInput holds the validated payload to create a product.
type CreateInput struct {
	Name             string
	Slug             string
	SKU              string
	Description      *string
	ShortDescription *string
	CategoryID       *int64
	Brand            *string
	ProductType      enums.ProductType
	Price            decimal.Decimal
	SalePrice        *decimal.Decimal
	StockQuantity    int
	StockStatus      enums.StockStatus
	Weight           *decimal.Decimal
	Dimensions       *string
	Status           enums.ProductStatus
	Featured         bool
	Visibility       enums.ProductVisibility
	Images           []ImageInput
	Attributes       []AttributeInput
}

// UpdateInput mirrors CreateInput with every field optional.
type UpdateInput struct {
	Name             *string
	Slug             *string
	Description      *string
	ShortDescription *string
	CategoryID       *int64
	Brand            *string
	ProductType      *enums.ProductType
	Price            *decimal.Decimal
	SalePrice        *decimal.Decimal
	ClearSalePrice   bool
	StockQuantity    *int
	StockStatus      *enums.StockStatus
	Weight           *decimal.Decimal
	Dimensions       *string
	Status           *enums.ProductStatus
	Featured         *bool
	Visibility       *enums.ProductVisibility
	Images           []ImageInput
	Attributes       []AttributeInput
}

// ImageInput is one gallery entry in a create/update payload.
type ImageInput struct {
	ImageURL  string
	AltText   *string
	SortOrder int
	IsPrimary bool
}

// AttributeInput is one selectable option in a create/update payload.
type AttributeInput struct {
	Name  string
	Value string
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	rows, total, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}

	params := input.Pagination.Normalize()
	result := &ListResult{Products: make([]ProductDTO, 0, len(rows))}
	for i := range rows {
		result.Products = append(result.Products, *toDTO(&rows[i]))
	}
	result.Pagination.Page = int64(params.Page)
	result.Pagination.Limit = int64(params.Limit)
	result.Pagination.Total = total
	result.Pagination.Pages = pagination.Pages(total, params.Limit)
	return result, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*ProductDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return toDTO(product), nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*ProductDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}
	product, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return toDTO(product), nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*ProductDTO, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(input.Name)
	}

	product := &models.Product{
		Name:             strings.TrimSpace(input.Name),
		Slug:             slug,
		SKU:              strings.TrimSpace(input.SKU),
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		CategoryID:       input.CategoryID,
		Brand:            input.Brand,
		ProductType:      input.ProductType,
		Price:            input.Price,
		SalePrice:        input.SalePrice,
		StockQuantity:    input.StockQuantity,
		StockStatus:      input.StockStatus,
		Weight:           input.Weight,
		Dimensions:       input.Dimensions,
		Status:           input.Status,
		Featured:         input.Featured,
		Visibility:       input.Visibility,
		Images:           imageModels(0, input.Images),
		Attributes:       attributeModels(0, input.Attributes),
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with that slug or sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	return toDTO(created), nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*ProductDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}

	applyUpdate(product, input)
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	// associations are replaced wholesale when provided
	product.Images = nil
	product.Attributes = nil
	if _, err := s.repo.Update(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with that slug or sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}
	if input.Images != nil {
		if err := s.repo.ReplaceImages(ctx, id, imageModels(id, input.Images)); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replacing product images")
		}
	}
	if input.Attributes != nil {
		if err := s.repo.ReplaceAttributes(ctx, id, attributeModels(id, input.Attributes)); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replacing product attributes")
		}
	}

	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}
	return nil
}

func validateCreate(input CreateInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if strings.TrimSpace(input.SKU) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product sku is required")
	}
	if !input.ProductType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product type")
	}
	if !input.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product status")
	}
	if !input.StockStatus.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid stock status")
	}
	if !input.Visibility.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product visibility")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if input.SalePrice != nil && input.SalePrice.GreaterThan(input.Price) {
		return pkgerrors.New(pkgerrors.CodeValidation, "sale price cannot exceed the unit price")
	}
	if input.StockQuantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock quantity must be non-negative")
	}
	return nil
}

func validateProduct(p *models.Product) error {
	if p.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if p.SalePrice != nil && p.SalePrice.GreaterThan(p.Price) {
		return pkgerrors.New(pkgerrors.CodeValidation, "sale price cannot exceed the unit price")
	}
	if p.StockQuantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock quantity must be non-negative")
	}
	return nil
}

func applyUpdate(p *models.Product, input UpdateInput) {
	if input.Name != nil {
		p.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		p.Slug = strings.TrimSpace(*input.Slug)
	}
	if input.Description != nil {
		p.Description = input.Description
	}
	if input.ShortDescription != nil {
		p.ShortDescription = input.ShortDescription
	}
	if input.CategoryID != nil {
		p.CategoryID = input.CategoryID
	}
	if input.Brand != nil {
		p.Brand = input.Brand
	}
	if input.ProductType != nil {
		p.ProductType = *input.ProductType
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.ClearSalePrice {
		p.SalePrice = nil
	} else if input.SalePrice != nil {
		p.SalePrice = input.SalePrice
	}
	if input.StockQuantity != nil {
		p.StockQuantity = *input.StockQuantity
	}
	if input.StockStatus != nil {
		p.StockStatus = *input.StockStatus
	}
	if input.Weight != nil {
		p.Weight = input.Weight
	}
	if input.Dimensions != nil {
		p.Dimensions = input.Dimensions
	}
	if input.Status != nil {
		p.Status = *input.Status
	}
	if input.Featured != nil {
		p.Featured = *input.Featured
	}
	if input.Visibility != nil {
		p.Visibility = *input.Visibility
	}
}

func imageModels(productID int64, inputs []ImageInput) []models.ProductImage {
	out := make([]models.ProductImage, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, models.ProductImage{
			ProductID: productID,
			ImageURL:  in.ImageURL,
			AltText:   in.AltText,
			SortOrder: in.SortOrder,
			IsPrimary: in.IsPrimary,
		})
	}
	return out
}

func attributeModels(productID int64, inputs []AttributeInput) []models.ProductAttribute {
	out := make([]models.ProductAttribute, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, models.ProductAttribute{
			ProductID:      productID,
			AttributeName:  in.Name,
			AttributeValue: in.Value,
		})
	}
	return out
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the name and collapses runs of non-alphanumerics into
// single hyphens.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
