package cart

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
)

// Line is one distinct product+attribute-selection entry in the cart.
type Line struct {
	ProductID          int64             `json:"productId"`
	Name               string            `json:"name"`
	UnitPrice          decimal.Decimal   `json:"unitPrice"`
	SalePrice          *decimal.Decimal  `json:"salePrice,omitempty"`
	Quantity           int               `json:"quantity"`
	ImageURL           string            `json:"image"`
	ProductType        enums.ProductType `json:"productType"`
	StockStatus        enums.StockStatus `json:"stockStatus"`
	MaxQuantity        int               `json:"maxQuantity"`
	SelectedAttributes map[string]string `json:"selectedAttributes,omitempty"`
}

// Key returns the line's identity key. Two lines with the same product but
// different selected attributes are distinct.
func (l Line) Key() string {
	return identityKey(l.ProductID, l.SelectedAttributes)
}

// EffectiveUnitPrice is the sale price when present, otherwise the unit price.
func (l Line) EffectiveUnitPrice() decimal.Decimal {
	if l.SalePrice != nil {
		return *l.SalePrice
	}
	return l.UnitPrice
}

// LineInput carries the data needed to add a line. Quantity of zero means one.
type LineInput struct {
	ProductID          int64
	Name               string
	UnitPrice          decimal.Decimal
	SalePrice          *decimal.Decimal
	Quantity           int
	ImageURL           string
	ProductType        enums.ProductType
	StockStatus        enums.StockStatus
	MaxQuantity        int
	SelectedAttributes map[string]string
}

// State is a snapshot of the cart aggregate. TotalItems and TotalPrice are
// derived from Items and never independently settable.
type State struct {
	Items      []Line          `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	IsOpen     bool            `json:"isOpen"`
}

// identityKey builds an order-independent canonical key from the product id
// and the selected attributes. A nil map and an empty map are equal.
func identityKey(productID int64, attrs map[string]string) string {
	if len(attrs) == 0 {
		return fmt.Sprintf("%d", productID)
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	fmt.Fprintf(&b, "%d", productID)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(attrs[k])
	}
	return b.String()
}

// Engine owns the cart contents for one shopper. It is a plain state machine:
// operations always succeed, out-of-range quantities are clamped rather than
// rejected, and totals stay consistent with the lines after every mutation.
// The engine itself does no I/O; callers handle persistence and locking.
type Engine struct {
	items      []Line
	totalItems int
	totalPrice decimal.Decimal
	isOpen     bool
}

// NewEngine returns an empty cart. Visibility always starts closed.
func NewEngine() *Engine {
	return &Engine{totalPrice: decimal.Zero}
}

// Restore replaces the items with a previously persisted list and recomputes
// totals. Lines are normalized so the quantity invariant holds even when the
// stored blob predates it. Visibility is not restored.
func (e *Engine) Restore(items []Line) {
	e.items = make([]Line, 0, len(items))
	for _, l := range items {
		e.items = append(e.items, normalizeLine(l))
	}
	e.recompute()
}

func normalizeLine(l Line) Line {
	if l.MaxQuantity < 1 {
		l.MaxQuantity = 1
	}
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	if l.Quantity > l.MaxQuantity {
		l.Quantity = l.MaxQuantity
	}
	l.SelectedAttributes = copyAttrs(l.SelectedAttributes)
	return l
}

// Add merges the input into an existing line with the same identity key or
// appends a new one. Quantity above the line's MaxQuantity is silently
// dropped.
func (e *Engine) Add(input LineInput) {
	qty := input.Quantity
	if qty < 1 {
		qty = 1
	}
	maxQty := input.MaxQuantity
	if maxQty < 1 {
		maxQty = 1
	}

	key := identityKey(input.ProductID, input.SelectedAttributes)
	for i := range e.items {
		if e.items[i].Key() == key {
			next := e.items[i].Quantity + qty
			if next > e.items[i].MaxQuantity {
				next = e.items[i].MaxQuantity
			}
			e.items[i].Quantity = next
			e.recompute()
			return
		}
	}

	if qty > maxQty {
		qty = maxQty
	}
	e.items = append(e.items, Line{
		ProductID:          input.ProductID,
		Name:               input.Name,
		UnitPrice:          input.UnitPrice,
		SalePrice:          input.SalePrice,
		Quantity:           qty,
		ImageURL:           input.ImageURL,
		ProductType:        input.ProductType,
		StockStatus:        input.StockStatus,
		MaxQuantity:        maxQty,
		SelectedAttributes: copyAttrs(input.SelectedAttributes),
	})
	e.recompute()
}

// Remove drops the line matching the identity key exactly. A miss is a no-op.
func (e *Engine) Remove(productID int64, attrs map[string]string) {
	key := identityKey(productID, attrs)
	for i := range e.items {
		if e.items[i].Key() == key {
			e.items = append(e.items[:i], e.items[i+1:]...)
			break
		}
	}
	e.recompute()
}

// UpdateQuantity sets the matching line's quantity, clamped to
// [1, MaxQuantity]. Zero or negative floors to one; it never removes the
// line. A miss is a no-op.
func (e *Engine) UpdateQuantity(productID int64, quantity int, attrs map[string]string) {
	key := identityKey(productID, attrs)
	for i := range e.items {
		if e.items[i].Key() == key {
			if quantity < 1 {
				quantity = 1
			}
			if quantity > e.items[i].MaxQuantity {
				quantity = e.items[i].MaxQuantity
			}
			e.items[i].Quantity = quantity
			break
		}
	}
	e.recompute()
}

// Clear empties the cart. The visibility flag is untouched.
func (e *Engine) Clear() {
	e.items = nil
	e.recompute()
}

// Toggle flips the visibility flag. Items and totals are unaffected.
func (e *Engine) Toggle() { e.isOpen = !e.isOpen }

// Open sets the visibility flag.
func (e *Engine) Open() { e.isOpen = true }

// Close clears the visibility flag.
func (e *Engine) Close() { e.isOpen = false }

// Empty reports whether the cart holds no lines.
func (e *Engine) Empty() bool { return len(e.items) == 0 }

// Snapshot returns a deep copy of the current state. Callers may not reach
// back into the engine through it.
func (e *Engine) Snapshot() State {
	items := make([]Line, len(e.items))
	for i, l := range e.items {
		l.SelectedAttributes = copyAttrs(l.SelectedAttributes)
		items[i] = l
	}
	return State{
		Items:      items,
		TotalItems: e.totalItems,
		TotalPrice: e.totalPrice,
		IsOpen:     e.isOpen,
	}
}

func (e *Engine) recompute() {
	total := 0
	price := decimal.Zero
	for _, l := range e.items {
		total += l.Quantity
		price = price.Add(l.EffectiveUnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	e.totalItems = total
	e.totalPrice = price
}

func copyAttrs(attrs map[string]string) map[string]string {
	if attrs == nil {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
