package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/middleware"
	cartsvc "github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/cart"
	productsvc "github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/products"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/metrics"
)

type stubCartService struct {
	state     cartsvc.State
	err       error
	lastInput cartsvc.LineInput
	lastOp    string
	shopperID string
}

func (s *stubCartService) Get(ctx context.Context, shopperID string) (cartsvc.State, error) {
	s.lastOp, s.shopperID = "get", shopperID
	return s.state, s.err
}

func (s *stubCartService) Add(ctx context.Context, shopperID string, input cartsvc.LineInput) (cartsvc.State, error) {
	s.lastOp, s.shopperID, s.lastInput = "add", shopperID, input
	return s.state, s.err
}

func (s *stubCartService) Remove(ctx context.Context, shopperID string, productID int64, attrs map[string]string) (cartsvc.State, error) {
	s.lastOp, s.shopperID = "remove", shopperID
	return s.state, s.err
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, shopperID string, productID int64, quantity int, attrs map[string]string) (cartsvc.State, error) {
	s.lastOp, s.shopperID = "update", shopperID
	return s.state, s.err
}

func (s *stubCartService) Clear(ctx context.Context, shopperID string) (cartsvc.State, error) {
	s.lastOp, s.shopperID = "clear", shopperID
	return s.state, s.err
}

func (s *stubCartService) Toggle(ctx context.Context, shopperID string) (cartsvc.State, error) {
	s.lastOp, s.shopperID = "toggle", shopperID
	return s.state, s.err
}

func (s *stubCartService) Open(ctx context.Context, shopperID string) (cartsvc.State, error) {
	s.lastOp, s.shopperID = "open", shopperID
	return s.state, s.err
}

func (s *stubCartService) Close(ctx context.Context, shopperID string) (cartsvc.State, error) {
	s.lastOp, s.shopperID = "close", shopperID
	return s.state, s.err
}

type stubProductReader struct {
	product *productsvc.ProductDTO
	err     error
}

func (s stubProductReader) GetByID(ctx context.Context, id int64) (*productsvc.ProductDTO, error) {
	return s.product, s.err
}

func TestCartFetchUsesShopperContext(t *testing.T) {
	svc := &stubCartService{state: cartsvc.State{TotalItems: 3, TotalPrice: decimal.NewFromInt(30)}}
	handler := CartFetch(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req = req.WithContext(middleware.WithShopperID(req.Context(), "guest-abc123"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.shopperID != "guest-abc123" {
		t.Fatalf("unexpected shopper id: %s", svc.shopperID)
	}

	var envelope struct {
		Data cartsvc.State `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalItems != 3 {
		t.Fatalf("unexpected total items: %d", envelope.Data.TotalItems)
	}
}

func TestCartFetchMissingShopper(t *testing.T) {
	handler := CartFetch(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemFreezesCatalogData(t *testing.T) {
	sale := decimal.NewFromFloat(8.50)
	catalog := stubProductReader{product: &productsvc.ProductDTO{
		ID:            7,
		Name:          "Mesh Firewall",
		Price:         decimal.NewFromInt(10),
		SalePrice:     &sale,
		ProductType:   enums.ProductTypeHardware,
		StockStatus:   enums.StockStatusInStock,
		StockQuantity: 4,
		Images: []productsvc.ImageDTO{
			{ImageURL: "https://cdn.example.com/side.png"},
			{ImageURL: "https://cdn.example.com/front.png", IsPrimary: true},
		},
	}}
	svc := &stubCartService{}
	handler := CartAddItem(svc, catalog, metrics.NewHTTPMetrics(nil), nil)

	body := `{"productId":7,"quantity":2,"selectedAttributes":{"color":"black"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithShopperID(req.Context(), "user-42"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastInput.ProductID != 7 {
		t.Fatalf("unexpected product id: %d", svc.lastInput.ProductID)
	}
	if !svc.lastInput.UnitPrice.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("price must come from the catalog, got %s", svc.lastInput.UnitPrice)
	}
	if svc.lastInput.SalePrice == nil || !svc.lastInput.SalePrice.Equal(sale) {
		t.Fatalf("sale price not frozen from catalog")
	}
	if svc.lastInput.MaxQuantity != 4 {
		t.Fatalf("max quantity must mirror stock, got %d", svc.lastInput.MaxQuantity)
	}
	if svc.lastInput.ImageURL != "https://cdn.example.com/front.png" {
		t.Fatalf("expected primary image, got %s", svc.lastInput.ImageURL)
	}
	if svc.lastInput.SelectedAttributes["color"] != "black" {
		t.Fatalf("selected attributes not forwarded")
	}
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	catalog := stubProductReader{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	handler := CartAddItem(&stubCartService{}, catalog, metrics.NewHTTPMetrics(nil), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"productId":99,"quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithShopperID(req.Context(), "guest-x"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartAddItemRejectsUnknownFields(t *testing.T) {
	handler := CartAddItem(&stubCartService{}, stubProductReader{}, metrics.NewHTTPMetrics(nil), nil)

	body := `{"productId":7,"quantity":1,"unitPrice":"0.01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithShopperID(req.Context(), "guest-x"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartToggleRoutesToService(t *testing.T) {
	svc := &stubCartService{state: cartsvc.State{IsOpen: true}}
	handler := CartToggle(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/toggle", nil)
	req = req.WithContext(middleware.WithShopperID(req.Context(), "user-1"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastOp != "toggle" {
		t.Fatalf("expected toggle op, got %s", svc.lastOp)
	}
}
