package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/types"
)

// Order is a placed order with an immutable line snapshot. Addresses are
// stored as JSON documents rather than normalized columns.
type Order struct {
	ID              int64               `gorm:"column:id;primaryKey;autoIncrement"`
	OrderNumber     string              `gorm:"column:order_number;uniqueIndex;not null"`
	UserID          int64               `gorm:"column:user_id;not null;index"`
	Status          enums.OrderStatus   `gorm:"column:status;not null;default:'pending'"`
	Subtotal        decimal.Decimal     `gorm:"column:subtotal;type:numeric(10,2);not null"`
	TaxAmount       decimal.Decimal     `gorm:"column:tax_amount;type:numeric(10,2);not null;default:0"`
	ShippingAmount  decimal.Decimal     `gorm:"column:shipping_amount;type:numeric(10,2);not null;default:0"`
	DiscountAmount  decimal.Decimal     `gorm:"column:discount_amount;type:numeric(10,2);not null;default:0"`
	TotalAmount     decimal.Decimal     `gorm:"column:total_amount;type:numeric(10,2);not null"`
	Currency        string              `gorm:"column:currency;not null;default:'USD'"`
	PaymentMethod   *string             `gorm:"column:payment_method"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;not null;default:'pending'"`
	ShippingAddress *types.Address      `gorm:"column:shipping_address;serializer:json"`
	BillingAddress  *types.Address      `gorm:"column:billing_address;serializer:json"`
	Notes           *string             `gorm:"column:notes"`
	ShippedDate     *time.Time          `gorm:"column:shipped_date"`
	DeliveredDate   *time.Time          `gorm:"column:delivered_date"`
	User            *User               `gorm:"foreignKey:UserID"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is a priced line frozen at checkout time. Product name and SKU
// are copied so later catalog edits do not rewrite order history.
type OrderItem struct {
	ID          int64             `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID     int64             `gorm:"column:order_id;not null;index"`
	ProductID   *int64            `gorm:"column:product_id"`
	ProductName string            `gorm:"column:product_name;not null"`
	ProductSKU  *string           `gorm:"column:product_sku"`
	Quantity    int               `gorm:"column:quantity;not null"`
	UnitPrice   decimal.Decimal   `gorm:"column:unit_price;type:numeric(10,2);not null"`
	TotalPrice  decimal.Decimal   `gorm:"column:total_price;type:numeric(10,2);not null"`
	Attributes  map[string]string `gorm:"column:attributes;serializer:json"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
}

func (OrderItem) TableName() string { return "order_items" }
