package enums

import "fmt"

// ProductType partitions the catalog into the three storefront verticals.
type ProductType string

const (
	ProductTypeHardware ProductType = "hardware"
	ProductTypeSoftware ProductType = "software"
	ProductTypeService  ProductType = "service"
)

var validProductTypes = []ProductType{
	ProductTypeHardware,
	ProductTypeSoftware,
	ProductTypeService,
}

// String implements fmt.Stringer.
func (p ProductType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductType.
func (p ProductType) IsValid() bool {
	for _, candidate := range validProductTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductType converts raw input into a ProductType.
func ParseProductType(value string) (ProductType, error) {
	for _, candidate := range validProductTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type %q", value)
}

// StockStatus mirrors the stock_status column values.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
	StockStatusBackorder  StockStatus = "on_backorder"
)

var validStockStatuses = []StockStatus{
	StockStatusInStock,
	StockStatusOutOfStock,
	StockStatusBackorder,
}

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockStatus.
func (s StockStatus) IsValid() bool {
	for _, candidate := range validStockStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStockStatus converts raw input into a StockStatus.
func ParseStockStatus(value string) (StockStatus, error) {
	for _, candidate := range validStockStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock status %q", value)
}

// ProductStatus tracks the publication lifecycle of a listing.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
	ProductStatusDraft    ProductStatus = "draft"
)

var validProductStatuses = []ProductStatus{
	ProductStatusActive,
	ProductStatusInactive,
	ProductStatusDraft,
}

// String implements fmt.Stringer.
func (s ProductStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductStatus.
func (s ProductStatus) IsValid() bool {
	for _, candidate := range validProductStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	for _, candidate := range validProductStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product status %q", value)
}

// ProductVisibility controls storefront exposure.
type ProductVisibility string

const (
	ProductVisibilityPublic  ProductVisibility = "public"
	ProductVisibilityPrivate ProductVisibility = "private"
	ProductVisibilityDraft   ProductVisibility = "draft"
)

var validProductVisibilities = []ProductVisibility{
	ProductVisibilityPublic,
	ProductVisibilityPrivate,
	ProductVisibilityDraft,
}

// String implements fmt.Stringer.
func (v ProductVisibility) String() string {
	return string(v)
}

// IsValid reports whether the value is a known ProductVisibility.
func (v ProductVisibility) IsValid() bool {
	for _, candidate := range validProductVisibilities {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseProductVisibility converts raw input into a ProductVisibility.
func ParseProductVisibility(value string) (ProductVisibility, error) {
	for _, candidate := range validProductVisibilities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product visibility %q", value)
}
