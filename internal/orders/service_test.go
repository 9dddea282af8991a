package orders

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/cart"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/logger"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/pagination"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/types"
)

type stubOrderRepo struct {
	created       *models.Order
	order         *models.Order
	createErr     error
	statusSet     string
	shippedDate   *time.Time
	deliveredDate *time.Time
}

func (s *stubOrderRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	order.ID = 55
	s.created = order
	return order, nil
}

func (s *stubOrderRepo) FindByID(_ context.Context, id int64) (*models.Order, error) {
	if s.order == nil || s.order.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

func (s *stubOrderRepo) ListByUser(_ context.Context, _ int64, _ pagination.Params) ([]models.Order, int64, error) {
	if s.order == nil {
		return nil, 0, nil
	}
	return []models.Order{*s.order}, 1, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, _ int64, status string, shippedDate, deliveredDate *time.Time) error {
	s.statusSet = status
	s.shippedDate = shippedDate
	s.deliveredDate = deliveredDate
	return nil
}

func newCartService(t *testing.T) cart.Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "orders-test", Level: logger.ParseLevel("error"), Output: io.Discard})
	svc, err := cart.NewService(cart.NewMemoryStore(), logg, false)
	if err != nil {
		t.Fatalf("cart.NewService: %v", err)
	}
	return svc
}

func seedCart(t *testing.T, carts cart.Service, shopperID string) {
	t.Helper()
	sale := decimal.RequireFromString("80")
	_, err := carts.Add(context.Background(), shopperID, cart.LineInput{
		ProductID:   1,
		Name:        "Keyboard",
		UnitPrice:   decimal.RequireFromString("100"),
		SalePrice:   &sale,
		Quantity:    2,
		MaxQuantity: 5,
		ProductType: enums.ProductTypeHardware,
		StockStatus: enums.StockStatusInStock,
	})
	if err != nil {
		t.Fatalf("seed cart: %v", err)
	}
}

func testAddress() *types.Address {
	return &types.Address{
		Name:    "Test Shopper",
		Street:  "1 Main St",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62701",
		Country: "US",
	}
}

func newOrderService(t *testing.T, repo orderRepo, carts cartReader) Service {
	t.Helper()
	svc, err := NewService(repo, carts, decimal.RequireFromString("0.10"), decimal.RequireFromString("5"))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != code {
		t.Fatalf("expected code %s, got %v", code, err)
	}
}

func TestCreateFromCartSnapshotsLinesAndClearsCart(t *testing.T) {
	ctx := context.Background()
	repo := &stubOrderRepo{}
	carts := newCartService(t)
	seedCart(t, carts, "shopper-1")

	svc := newOrderService(t, repo, carts)
	dto, err := svc.CreateFromCart(ctx, 9, CreateInput{
		ShopperID:       "shopper-1",
		PaymentMethod:   "cod",
		ShippingAddress: testAddress(),
	})
	if err != nil {
		t.Fatalf("CreateFromCart: %v", err)
	}

	if !strings.HasPrefix(dto.OrderNumber, "ORD-") {
		t.Fatalf("unexpected order number %q", dto.OrderNumber)
	}
	// subtotal 2 x 80 sale price = 160, tax 10% = 16, shipping 5
	if !dto.Subtotal.Equal(decimal.RequireFromString("160")) {
		t.Fatalf("subtotal = %s", dto.Subtotal)
	}
	if !dto.TaxAmount.Equal(decimal.RequireFromString("16")) {
		t.Fatalf("tax = %s", dto.TaxAmount)
	}
	if !dto.TotalAmount.Equal(decimal.RequireFromString("181")) {
		t.Fatalf("total = %s", dto.TotalAmount)
	}
	if len(dto.Items) != 1 || dto.Items[0].ProductName != "Keyboard" || dto.Items[0].Quantity != 2 {
		t.Fatalf("items not snapshotted: %+v", dto.Items)
	}
	if dto.Status != enums.OrderStatusPending || dto.PaymentStatus != enums.PaymentStatusPending {
		t.Fatalf("unexpected initial statuses %s/%s", dto.Status, dto.PaymentStatus)
	}
	if dto.BillingAddress == nil || dto.BillingAddress.City != "Springfield" {
		t.Fatal("billing address should default to shipping")
	}

	state, err := carts.Get(ctx, "shopper-1")
	if err != nil {
		t.Fatalf("cart get: %v", err)
	}
	if state.TotalItems != 0 {
		t.Fatalf("cart should be cleared after checkout, got %+v", state)
	}
}

func TestCreateFromCartValidation(t *testing.T) {
	ctx := context.Background()
	carts := newCartService(t)
	svc := newOrderService(t, &stubOrderRepo{}, carts)

	_, err := svc.CreateFromCart(ctx, 0, CreateInput{ShopperID: "x", ShippingAddress: testAddress()})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateFromCart(ctx, 9, CreateInput{ShippingAddress: testAddress()})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateFromCart(ctx, 9, CreateInput{ShopperID: "x"})
	assertCode(t, err, pkgerrors.CodeValidation)

	// empty cart cannot check out
	_, err = svc.CreateFromCart(ctx, 9, CreateInput{ShopperID: "empty", ShippingAddress: testAddress()})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestGetByIDEnforcesOwnership(t *testing.T) {
	ctx := context.Background()
	repo := &stubOrderRepo{order: &models.Order{ID: 5, UserID: 9, Status: enums.OrderStatusPending}}
	svc := newOrderService(t, repo, newCartService(t))

	if _, err := svc.GetByID(ctx, 9, false, 5); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := svc.GetByID(ctx, 7, true, 5); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}

	_, err := svc.GetByID(ctx, 7, false, 5)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateStatusRejectsTerminalOrders(t *testing.T) {
	ctx := context.Background()
	repo := &stubOrderRepo{order: &models.Order{ID: 5, UserID: 9, Status: enums.OrderStatusCancelled}}
	svc := newOrderService(t, repo, newCartService(t))

	_, err := svc.UpdateStatus(ctx, 5, enums.OrderStatusShipped)
	assertCode(t, err, pkgerrors.CodeStateConflict)
}

func TestUpdateStatusValidTransition(t *testing.T) {
	ctx := context.Background()
	repo := &stubOrderRepo{order: &models.Order{ID: 5, UserID: 9, Status: enums.OrderStatusPending}}
	svc := newOrderService(t, repo, newCartService(t))

	dto, err := svc.UpdateStatus(ctx, 5, enums.OrderStatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if dto.Status != enums.OrderStatusConfirmed || repo.statusSet != "confirmed" {
		t.Fatalf("status not applied: dto=%s repo=%s", dto.Status, repo.statusSet)
	}

	_, err = svc.UpdateStatus(ctx, 5, enums.OrderStatus("lost"))
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateStatusStampsShipmentDates(t *testing.T) {
	ctx := context.Background()
	repo := &stubOrderRepo{order: &models.Order{ID: 5, UserID: 9, Status: enums.OrderStatusProcessing}}
	svc := newOrderService(t, repo, newCartService(t))

	dto, err := svc.UpdateStatus(ctx, 5, enums.OrderStatusShipped)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if dto.ShippedDate == nil || repo.shippedDate == nil {
		t.Fatal("shippedDate not stamped")
	}
	if dto.DeliveredDate != nil {
		t.Fatal("deliveredDate stamped too early")
	}

	dto, err = svc.UpdateStatus(ctx, 5, enums.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if dto.DeliveredDate == nil || repo.deliveredDate == nil {
		t.Fatal("deliveredDate not stamped")
	}
}
