package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
)

// Product represents a storefront listing. Prices are exact decimals; binary
// floating point is never used for money.
type Product struct {
	ID               int64                   `gorm:"column:id;primaryKey;autoIncrement"`
	Name             string                  `gorm:"column:name;not null"`
	Slug             string                  `gorm:"column:slug;uniqueIndex;not null"`
	SKU              string                  `gorm:"column:sku;uniqueIndex;not null"`
	Description      *string                 `gorm:"column:description"`
	ShortDescription *string                 `gorm:"column:short_description"`
	CategoryID       *int64                  `gorm:"column:category_id"`
	Brand            *string                 `gorm:"column:brand"`
	ProductType      enums.ProductType       `gorm:"column:product_type;not null;default:'hardware'"`
	Price            decimal.Decimal         `gorm:"column:price;type:numeric(10,2);not null"`
	SalePrice        *decimal.Decimal        `gorm:"column:sale_price;type:numeric(10,2)"`
	StockQuantity    int                     `gorm:"column:stock_quantity;not null;default:0"`
	StockStatus      enums.StockStatus       `gorm:"column:stock_status;not null;default:'in_stock'"`
	Weight           *decimal.Decimal        `gorm:"column:weight;type:numeric(8,2)"`
	Dimensions       *string                 `gorm:"column:dimensions"`
	Status           enums.ProductStatus     `gorm:"column:status;not null;default:'draft'"`
	Featured         bool                    `gorm:"column:featured;not null;default:false"`
	Visibility       enums.ProductVisibility `gorm:"column:visibility;not null;default:'public'"`
	MetaTitle        *string                 `gorm:"column:meta_title"`
	MetaDescription  *string                 `gorm:"column:meta_description"`
	Category         *Category               `gorm:"foreignKey:CategoryID"`
	Images           []ProductImage          `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Attributes       []ProductAttribute      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy table name.
func (Product) TableName() string { return "products" }

// EffectivePrice returns the sale price when set, otherwise the list price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}
