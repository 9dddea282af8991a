package products

import (
	"github.com/shopspring/decimal"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/pagination"
)

// ListFilters describe the supported filter knobs for the browse endpoint.
type ListFilters struct {
	Search      string               `json:"q,omitempty"`
	CategoryID  *int64               `json:"category_id,omitempty"`
	ProductType *enums.ProductType   `json:"product_type,omitempty"`
	Brand       string               `json:"brand,omitempty"`
	Status      *enums.ProductStatus `json:"status,omitempty"`
	StockStatus *enums.StockStatus   `json:"stock_status,omitempty"`
	Featured    *bool                `json:"featured,omitempty"`
	MinPrice    *decimal.Decimal     `json:"min_price,omitempty"`
	MaxPrice    *decimal.Decimal     `json:"max_price,omitempty"`
	SortBy      string               `json:"sort_by,omitempty"`
}

// ListInput captures the inputs needed to paginate/filter the catalog.
type ListInput struct {
	Filters    ListFilters
	Pagination pagination.Params
}

// sortColumns whitelists the ORDER BY clauses reachable from the query
// string. Anything else falls back to newest-first.
var sortColumns = map[string]string{
	"newest":     "created_at DESC",
	"oldest":     "created_at ASC",
	"price_low":  "price ASC",
	"price_high": "price DESC",
	"name":       "name ASC",
}

func orderClause(sortBy string) string {
	if clause, ok := sortColumns[sortBy]; ok {
		return clause
	}
	return sortColumns["newest"]
}
