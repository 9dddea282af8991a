package products

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/pagination"
)

type stubRepo struct {
	product    *models.Product
	listRows   []models.Product
	listTotal  int64
	created    *models.Product
	findErr    error
	createErr  error
	deleted    []int64
	images     []models.ProductImage
	attributes []models.ProductAttribute
}

func (s *stubRepo) FindByID(_ context.Context, id int64) (*models.Product, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.product == nil || s.product.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.product, nil
}

func (s *stubRepo) FindBySlug(_ context.Context, slug string) (*models.Product, error) {
	if s.product == nil || s.product.Slug != slug {
		return nil, gorm.ErrRecordNotFound
	}
	return s.product, nil
}

func (s *stubRepo) List(_ context.Context, _ ListInput) ([]models.Product, int64, error) {
	return s.listRows, s.listTotal, nil
}

func (s *stubRepo) Create(_ context.Context, product *models.Product) (*models.Product, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	product.ID = 101
	s.created = product
	return product, nil
}

func (s *stubRepo) Update(_ context.Context, product *models.Product) (*models.Product, error) {
	s.product = product
	return product, nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubRepo) ReplaceImages(_ context.Context, _ int64, images []models.ProductImage) error {
	s.images = images
	return nil
}

func (s *stubRepo) ReplaceAttributes(_ context.Context, _ int64, attrs []models.ProductAttribute) error {
	s.attributes = attrs
	return nil
}

func validCreateInput() CreateInput {
	return CreateInput{
		Name:        "Mechanical Keyboard",
		SKU:         "KB-100",
		ProductType: enums.ProductTypeHardware,
		Price:       decimal.NewFromInt(150),
		StockStatus: enums.StockStatusInStock,
		Status:      enums.ProductStatusActive,
		Visibility:  enums.ProductVisibilityPublic,
	}
}

func newService(t *testing.T, repo *stubRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected typed error, got %v", err)
	}
	if appErr.Code() != code {
		t.Fatalf("expected code %s, got %s", code, appErr.Code())
	}
}

func TestCreateGeneratesSlug(t *testing.T) {
	repo := &stubRepo{}
	svc := newService(t, repo)

	dto, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if dto.Slug != "mechanical-keyboard" {
		t.Fatalf("expected generated slug, got %q", dto.Slug)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newService(t, &stubRepo{})
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"missing name", func(in *CreateInput) { in.Name = " " }},
		{"missing sku", func(in *CreateInput) { in.SKU = "" }},
		{"bad product type", func(in *CreateInput) { in.ProductType = "appliance" }},
		{"negative price", func(in *CreateInput) { in.Price = decimal.NewFromInt(-1) }},
		{"sale above price", func(in *CreateInput) {
			sale := decimal.NewFromInt(500)
			in.SalePrice = &sale
		}},
		{"negative stock", func(in *CreateInput) { in.StockQuantity = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateInput()
			tc.mutate(&in)
			_, err := svc.Create(ctx, in)
			if err == nil {
				t.Fatal("expected error")
			}
			assertCode(t, err, pkgerrors.CodeValidation)
		})
	}
}

func TestCreateMapsUniqueViolationToConflict(t *testing.T) {
	repo := &stubRepo{createErr: errors.New(`duplicate key value violates unique constraint "products_sku_key" (SQLSTATE 23505)`)}
	svc := newService(t, repo)

	_, err := svc.Create(context.Background(), validCreateInput())
	if err == nil {
		t.Fatal("expected error")
	}
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newService(t, &stubRepo{})

	_, err := svc.GetByID(context.Background(), 404)
	if err == nil {
		t.Fatal("expected error")
	}
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestGetBySlug(t *testing.T) {
	repo := &stubRepo{product: &models.Product{
		ID:          5,
		Slug:        "gaming-mouse",
		Name:        "Gaming Mouse",
		Price:       decimal.NewFromInt(49),
		ProductType: enums.ProductTypeHardware,
	}}
	svc := newService(t, repo)

	dto, err := svc.GetBySlug(context.Background(), "gaming-mouse")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if dto.ID != 5 || dto.Name != "Gaming Mouse" {
		t.Fatalf("unexpected dto %+v", dto)
	}
}

func TestListBuildsPaginationEnvelope(t *testing.T) {
	repo := &stubRepo{
		listRows:  []models.Product{{ID: 1, Name: "A", Price: decimal.NewFromInt(1)}},
		listTotal: 42,
	}
	svc := newService(t, repo)

	result, err := svc.List(context.Background(), ListInput{
		Pagination: pagination.Params{Page: 2, Limit: 10},
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(result.Products) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Products))
	}
	p := result.Pagination
	if p.Page != 2 || p.Limit != 10 || p.Total != 42 || p.Pages != 5 {
		t.Fatalf("unexpected pagination %+v", p)
	}
}

func TestUpdateReplacesAssociationsWhenProvided(t *testing.T) {
	repo := &stubRepo{product: &models.Product{
		ID:          7,
		Name:        "Old",
		Price:       decimal.NewFromInt(10),
		ProductType: enums.ProductTypeHardware,
	}}
	svc := newService(t, repo)

	name := "New Name"
	_, err := svc.Update(context.Background(), 7, UpdateInput{
		Name:   &name,
		Images: []ImageInput{{ImageURL: "https://img.example/1.jpg", IsPrimary: true}},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if repo.product.Name != "New Name" {
		t.Fatalf("name not applied: %q", repo.product.Name)
	}
	if len(repo.images) != 1 || repo.images[0].ProductID != 7 {
		t.Fatalf("images not replaced: %+v", repo.images)
	}
	if repo.attributes != nil {
		t.Fatal("attributes must be left alone when not provided")
	}
}

func TestDeleteRequiresExistingProduct(t *testing.T) {
	repo := &stubRepo{product: &models.Product{ID: 3, Price: decimal.NewFromInt(1)}}
	svc := newService(t, repo)

	if err := svc.Delete(context.Background(), 99); err == nil {
		t.Fatal("expected not found")
	}
	if err := svc.Delete(context.Background(), 3); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != 3 {
		t.Fatalf("unexpected delete calls %v", repo.deleted)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Mechanical Keyboard":   "mechanical-keyboard",
		"  USB-C  Hub (2024) ":  "usb-c-hub-2024",
		"Çrazy--dashes---here!": "razy-dashes-here",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
