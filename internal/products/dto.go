package products

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/types"
)

// ImageDTO is one gallery entry on a product read path.
type ImageDTO struct {
	ID        int64   `json:"id"`
	ImageURL  string  `json:"imageUrl"`
	AltText   *string `json:"altText,omitempty"`
	SortOrder int     `json:"sortOrder"`
	IsPrimary bool    `json:"isPrimary"`
}

// AttributeDTO is one selectable option on a product read path.
type AttributeDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductDTO is the catalog read model returned to clients.
type ProductDTO struct {
	ID               int64                   `json:"id"`
	Name             string                  `json:"name"`
	Slug             string                  `json:"slug"`
	SKU              string                  `json:"sku"`
	Description      *string                 `json:"description,omitempty"`
	ShortDescription *string                 `json:"shortDescription,omitempty"`
	CategoryID       *int64                  `json:"categoryId,omitempty"`
	CategoryName     *string                 `json:"categoryName,omitempty"`
	Brand            *string                 `json:"brand,omitempty"`
	ProductType      enums.ProductType       `json:"productType"`
	Price            decimal.Decimal         `json:"price"`
	SalePrice        *decimal.Decimal        `json:"salePrice,omitempty"`
	StockQuantity    int                     `json:"stockQuantity"`
	StockStatus      enums.StockStatus       `json:"stockStatus"`
	Weight           *decimal.Decimal        `json:"weight,omitempty"`
	Dimensions       *string                 `json:"dimensions,omitempty"`
	Status           enums.ProductStatus     `json:"status"`
	Featured         bool                    `json:"featured"`
	Visibility       enums.ProductVisibility `json:"visibility"`
	Images           []ImageDTO              `json:"images"`
	Attributes       []AttributeDTO          `json:"attributes"`
	CreatedAt        time.Time               `json:"createdAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
}

// ListResult is one catalog page plus its pagination envelope.
type ListResult struct {
	Products   []ProductDTO     `json:"products"`
	Pagination types.Pagination `json:"pagination"`
}

func toDTO(p *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		SKU:              p.SKU,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		CategoryID:       p.CategoryID,
		Brand:            p.Brand,
		ProductType:      p.ProductType,
		Price:            p.Price,
		SalePrice:        p.SalePrice,
		StockQuantity:    p.StockQuantity,
		StockStatus:      p.StockStatus,
		Weight:           p.Weight,
		Dimensions:       p.Dimensions,
		Status:           p.Status,
		Featured:         p.Featured,
		Visibility:       p.Visibility,
		Images:           make([]ImageDTO, 0, len(p.Images)),
		Attributes:       make([]AttributeDTO, 0, len(p.Attributes)),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.Category != nil {
		dto.CategoryName = &p.Category.Name
	}
	for _, img := range p.Images {
		dto.Images = append(dto.Images, ImageDTO{
			ID:        img.ID,
			ImageURL:  img.ImageURL,
			AltText:   img.AltText,
			SortOrder: img.SortOrder,
			IsPrimary: img.IsPrimary,
		})
	}
	for _, attr := range p.Attributes {
		dto.Attributes = append(dto.Attributes, AttributeDTO{
			Name:  attr.AttributeName,
			Value: attr.AttributeValue,
		})
	}
	return dto
}
