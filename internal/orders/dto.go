package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/types"
)

// ItemDTO is one frozen order line.
type ItemDTO struct {
	ID          int64             `json:"id"`
	ProductID   *int64            `json:"productId,omitempty"`
	ProductName string            `json:"productName"`
	ProductSKU  *string           `json:"productSku,omitempty"`
	Quantity    int               `json:"quantity"`
	UnitPrice   decimal.Decimal   `json:"unitPrice"`
	TotalPrice  decimal.Decimal   `json:"totalPrice"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// OrderDTO is the order read model.
type OrderDTO struct {
	ID              int64               `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	UserID          int64               `json:"userId"`
	Status          enums.OrderStatus   `json:"status"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	TaxAmount       decimal.Decimal     `json:"taxAmount"`
	ShippingAmount  decimal.Decimal     `json:"shippingAmount"`
	DiscountAmount  decimal.Decimal     `json:"discountAmount"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	Currency        string              `json:"currency"`
	PaymentMethod   *string             `json:"paymentMethod,omitempty"`
	PaymentStatus   enums.PaymentStatus `json:"paymentStatus"`
	ShippingAddress *types.Address      `json:"shippingAddress,omitempty"`
	BillingAddress  *types.Address      `json:"billingAddress,omitempty"`
	Notes           *string             `json:"notes,omitempty"`
	ShippedDate     *time.Time          `json:"shippedDate,omitempty"`
	DeliveredDate   *time.Time          `json:"deliveredDate,omitempty"`
	Items           []ItemDTO           `json:"items"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// ListResult is one history page plus its pagination envelope.
type ListResult struct {
	Orders     []OrderDTO       `json:"orders"`
	Pagination types.Pagination `json:"pagination"`
}

func toDTO(o *models.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		Status:          o.Status,
		Subtotal:        o.Subtotal,
		TaxAmount:       o.TaxAmount,
		ShippingAmount:  o.ShippingAmount,
		DiscountAmount:  o.DiscountAmount,
		TotalAmount:     o.TotalAmount,
		Currency:        o.Currency,
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   o.PaymentStatus,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		Notes:           o.Notes,
		ShippedDate:     o.ShippedDate,
		DeliveredDate:   o.DeliveredDate,
		Items:           make([]ItemDTO, 0, len(o.Items)),
		CreatedAt:       o.CreatedAt,
	}
	for _, item := range o.Items {
		dto.Items = append(dto.Items, ItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductSKU:  item.ProductSKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			Attributes:  item.Attributes,
		})
	}
	return dto
}
