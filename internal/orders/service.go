package orders

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/cart"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/pagination"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/types"
)

// Service exposes order placement and history operations.
type Service interface {
	CreateFromCart(ctx context.Context, userID int64, input CreateInput) (*OrderDTO, error)
	GetByID(ctx context.Context, userID int64, isAdmin bool, id int64) (*OrderDTO, error)
	ListByUser(ctx context.Context, userID int64, params pagination.Params) (*ListResult, error)
	UpdateStatus(ctx context.Context, id int64, status enums.OrderStatus) (*OrderDTO, error)
}

type orderRepo interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	ListByUser(ctx context.Context, userID int64, params pagination.Params) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id int64, status string, shippedDate, deliveredDate *time.Time) error
}

type cartReader interface {
	Get(ctx context.Context, shopperID string) (cart.State, error)
	Clear(ctx context.Context, shopperID string) (cart.State, error)
}

type service struct {
	repo     orderRepo
	carts    cartReader
	tax      decimal.Decimal
	shipping decimal.Decimal
}

// NewService builds an order service. The tax rate is a fraction (0.08 for
// 8%) applied to the subtotal; shipping is a flat amount.
func NewService(repo orderRepo, carts cartReader, taxRate, flatShipping decimal.Decimal) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if taxRate.IsNegative() || flatShipping.IsNegative() {
		return nil, fmt.Errorf("tax rate and shipping must be non-negative")
	}
	return &service{repo: repo, carts: carts, tax: taxRate, shipping: flatShipping}, nil
}

// CreateInput captures the checkout payload. Line contents come from the
// cart snapshot, never from the client.
type CreateInput struct {
	ShopperID       string
	PaymentMethod   string
	ShippingAddress *types.Address
	BillingAddress  *types.Address
	Notes           *string
}

func (s *service) CreateFromCart(ctx context.Context, userID int64, input CreateInput) (*OrderDTO, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if strings.TrimSpace(input.ShopperID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shopper id is required")
	}
	if input.ShippingAddress == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address is required")
	}

	snapshot, err := s.carts.Get(ctx, input.ShopperID)
	if err != nil {
		return nil, err
	}
	if len(snapshot.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	subtotal := snapshot.TotalPrice
	taxAmount := subtotal.Mul(s.tax).Round(2)
	total := subtotal.Add(taxAmount).Add(s.shipping)

	billing := input.BillingAddress
	if billing == nil {
		billing = input.ShippingAddress
	}

	order := &models.Order{
		OrderNumber:     newOrderNumber(time.Now()),
		UserID:          userID,
		Status:          enums.OrderStatusPending,
		Subtotal:        subtotal,
		TaxAmount:       taxAmount,
		ShippingAmount:  s.shipping,
		DiscountAmount:  decimal.Zero,
		TotalAmount:     total,
		Currency:        "USD",
		PaymentStatus:   enums.PaymentStatusPending,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  billing,
		Notes:           input.Notes,
		Items:           itemsFromCart(snapshot.Items),
	}
	if method := strings.TrimSpace(input.PaymentMethod); method != "" {
		order.PaymentMethod = &method
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
	}

	// the cart is spent once the order exists
	if _, err := s.carts.Clear(ctx, input.ShopperID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart after checkout")
	}

	return toDTO(created), nil
}

func (s *service) GetByID(ctx context.Context, userID int64, isAdmin bool, id int64) (*OrderDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	if !isAdmin && order.UserID != userID {
		// hide the existence of other shoppers' orders
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return toDTO(order), nil
}

func (s *service) ListByUser(ctx context.Context, userID int64, params pagination.Params) (*ListResult, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, total, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}

	normalized := params.Normalize()
	result := &ListResult{Orders: make([]OrderDTO, 0, len(rows))}
	for i := range rows {
		result.Orders = append(result.Orders, *toDTO(&rows[i]))
	}
	result.Pagination.Page = int64(normalized.Page)
	result.Pagination.Limit = int64(normalized.Limit)
	result.Pagination.Total = total
	result.Pagination.Pages = pagination.Pages(total, normalized.Limit)
	return result, nil
}

// terminalStatuses cannot transition anywhere else.
var terminalStatuses = map[enums.OrderStatus]struct{}{
	enums.OrderStatusCancelled: {},
	enums.OrderStatusRefunded:  {},
}

func (s *service) UpdateStatus(ctx context.Context, id int64, status enums.OrderStatus) (*OrderDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	if _, terminal := terminalStatuses[order.Status]; terminal {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("order is already %s", order.Status))
	}

	var shipped, delivered *time.Time
	now := time.Now()
	switch status {
	case enums.OrderStatusShipped:
		shipped = &now
	case enums.OrderStatusDelivered:
		delivered = &now
	}

	if err := s.repo.UpdateStatus(ctx, id, status.String(), shipped, delivered); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}
	order.Status = status
	if shipped != nil {
		order.ShippedDate = shipped
	}
	if delivered != nil {
		order.DeliveredDate = delivered
	}
	return toDTO(order), nil
}

func itemsFromCart(lines []cart.Line) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		unit := line.EffectiveUnitPrice()
		productID := line.ProductID
		items = append(items, models.OrderItem{
			ProductID:   &productID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			UnitPrice:   unit,
			TotalPrice:  unit.Mul(decimal.NewFromInt(int64(line.Quantity))),
			Attributes:  line.SelectedAttributes,
		})
	}
	return items
}

// newOrderNumber builds a public order reference like ORD-1718211550-4821.
func newOrderNumber(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	suffix := int64(0)
	if err == nil {
		suffix = n.Int64()
	}
	return fmt.Sprintf("ORD-%d-%04d", now.Unix(), suffix)
}
