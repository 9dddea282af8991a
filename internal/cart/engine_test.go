package cart

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
)

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func pricePtr(s string) *decimal.Decimal {
	d := price(s)
	return &d
}

func hardwareLine(productID int64, unitPrice string, maxQty int) LineInput {
	return LineInput{
		ProductID:   productID,
		Name:        "test product",
		UnitPrice:   price(unitPrice),
		Quantity:    1,
		ImageURL:    "https://img.example/p.jpg",
		ProductType: enums.ProductTypeHardware,
		StockStatus: enums.StockStatusInStock,
		MaxQuantity: maxQty,
	}
}

func TestAddMergesByIdentityKeyAndClamps(t *testing.T) {
	e := NewEngine()

	in := hardwareLine(1, "100", 2)
	e.Add(in)

	snap := e.Snapshot()
	if snap.TotalItems != 1 {
		t.Fatalf("expected totalItems 1, got %d", snap.TotalItems)
	}
	if !snap.TotalPrice.Equal(price("100")) {
		t.Fatalf("expected totalPrice 100, got %s", snap.TotalPrice)
	}

	// repeat add of the same key merges and clamps at maxQuantity
	in.Quantity = 5
	e.Add(in)

	snap = e.Snapshot()
	if len(snap.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(snap.Items))
	}
	if snap.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity clamped to 2, got %d", snap.Items[0].Quantity)
	}
	if snap.TotalItems != 2 || !snap.TotalPrice.Equal(price("200")) {
		t.Fatalf("unexpected totals items=%d price=%s", snap.TotalItems, snap.TotalPrice)
	}
}

func TestAddDistinguishesAttributeSelections(t *testing.T) {
	e := NewEngine()

	red := hardwareLine(1, "50", 10)
	red.SelectedAttributes = map[string]string{"color": "red"}
	blue := hardwareLine(1, "50", 10)
	blue.SelectedAttributes = map[string]string{"color": "blue"}

	e.Add(red)
	e.Add(blue)

	snap := e.Snapshot()
	if len(snap.Items) != 2 {
		t.Fatalf("expected two distinct lines, got %d", len(snap.Items))
	}
}

func TestAddAttributeOrderDoesNotSplitLines(t *testing.T) {
	e := NewEngine()

	first := hardwareLine(7, "10", 10)
	first.SelectedAttributes = map[string]string{"color": "red", "size": "xl"}
	second := hardwareLine(7, "10", 10)
	second.SelectedAttributes = map[string]string{"size": "xl", "color": "red"}

	e.Add(first)
	e.Add(second)

	snap := e.Snapshot()
	if len(snap.Items) != 1 {
		t.Fatalf("same selections in different order should merge, got %d lines", len(snap.Items))
	}
	if snap.Items[0].Quantity != 2 {
		t.Fatalf("expected merged quantity 2, got %d", snap.Items[0].Quantity)
	}
}

func TestNilAndEmptyAttributesAreOneIdentity(t *testing.T) {
	e := NewEngine()

	bare := hardwareLine(3, "10", 10)
	bare.SelectedAttributes = nil
	empty := hardwareLine(3, "10", 10)
	empty.SelectedAttributes = map[string]string{}

	e.Add(bare)
	e.Add(empty)

	snap := e.Snapshot()
	if len(snap.Items) != 1 {
		t.Fatalf("nil and empty attribute maps should be the same identity, got %d lines", len(snap.Items))
	}
}

func TestAddQuantityDefaultsToOne(t *testing.T) {
	e := NewEngine()

	in := hardwareLine(1, "10", 5)
	in.Quantity = 0
	e.Add(in)

	if snap := e.Snapshot(); snap.TotalItems != 1 {
		t.Fatalf("expected default quantity 1, got %d", snap.TotalItems)
	}
}

func TestSalePriceWinsInTotals(t *testing.T) {
	e := NewEngine()

	in := hardwareLine(1, "100", 10)
	in.SalePrice = pricePtr("79.99")
	in.Quantity = 3
	e.Add(in)

	snap := e.Snapshot()
	if !snap.TotalPrice.Equal(price("239.97")) {
		t.Fatalf("expected 239.97, got %s", snap.TotalPrice)
	}
}

func TestDecimalTotalsDoNotDrift(t *testing.T) {
	e := NewEngine()

	// 0.1 * 3 is exact in decimal arithmetic, not in binary floats
	in := hardwareLine(1, "0.1", 100)
	in.Quantity = 3
	e.Add(in)

	snap := e.Snapshot()
	if !snap.TotalPrice.Equal(price("0.3")) {
		t.Fatalf("expected exactly 0.3, got %s", snap.TotalPrice)
	}
}

func TestRemoveMatchesIdentityExactly(t *testing.T) {
	e := NewEngine()

	red := hardwareLine(1, "50", 10)
	red.SelectedAttributes = map[string]string{"color": "red"}
	blue := hardwareLine(1, "50", 10)
	blue.SelectedAttributes = map[string]string{"color": "blue"}
	e.Add(red)
	e.Add(blue)

	e.Remove(1, map[string]string{"color": "red"})

	snap := e.Snapshot()
	if len(snap.Items) != 1 {
		t.Fatalf("expected one line left, got %d", len(snap.Items))
	}
	if snap.Items[0].SelectedAttributes["color"] != "blue" {
		t.Fatal("wrong line removed")
	}
}

func TestRemoveMissIsNoOp(t *testing.T) {
	e := NewEngine()
	e.Add(hardwareLine(1, "25", 5))
	before := e.Snapshot()

	e.Remove(999, nil)
	e.Remove(1, map[string]string{"color": "red"})

	after := e.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed on miss: before=%+v after=%+v", before, after)
	}
}

func TestUpdateQuantityClampsBothEnds(t *testing.T) {
	e := NewEngine()
	e.Add(hardwareLine(1, "10", 4))

	e.UpdateQuantity(1, 100, nil)
	if got := e.Snapshot().Items[0].Quantity; got != 4 {
		t.Fatalf("expected clamp to max 4, got %d", got)
	}

	// zero floors to one, it does not remove the line
	e.UpdateQuantity(1, 0, nil)
	snap := e.Snapshot()
	if len(snap.Items) != 1 {
		t.Fatal("updateQuantity(0) must not remove the line")
	}
	if snap.Items[0].Quantity != 1 {
		t.Fatalf("expected floor to 1, got %d", snap.Items[0].Quantity)
	}

	e.UpdateQuantity(1, -3, nil)
	if got := e.Snapshot().Items[0].Quantity; got != 1 {
		t.Fatalf("expected negative to floor to 1, got %d", got)
	}
}

func TestUpdateQuantityMissIsNoOp(t *testing.T) {
	e := NewEngine()
	e.Add(hardwareLine(1, "10", 4))
	before := e.Snapshot()

	e.UpdateQuantity(999, 3, nil)

	if after := e.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Fatal("state changed when updating a missing line")
	}
}

func TestClearEmptiesEverythingButVisibility(t *testing.T) {
	e := NewEngine()
	e.Add(hardwareLine(1, "10", 4))
	e.Open()

	e.Clear()

	snap := e.Snapshot()
	if len(snap.Items) != 0 || snap.TotalItems != 0 || !snap.TotalPrice.IsZero() {
		t.Fatalf("expected empty cart, got %+v", snap)
	}
	if !snap.IsOpen {
		t.Fatal("clear must not touch the visibility flag")
	}
}

func TestVisibilityTransitions(t *testing.T) {
	e := NewEngine()

	if e.Snapshot().IsOpen {
		t.Fatal("cart must start closed")
	}

	e.Toggle()
	if !e.Snapshot().IsOpen {
		t.Fatal("toggle should open a closed cart")
	}
	e.Toggle()
	if e.Snapshot().IsOpen {
		t.Fatal("toggle should close an open cart")
	}

	e.Open()
	e.Open()
	if !e.Snapshot().IsOpen {
		t.Fatal("open is idempotent and leaves the cart open")
	}
	e.Close()
	if e.Snapshot().IsOpen {
		t.Fatal("close should leave the cart closed")
	}

	// visibility never affects items or totals
	e.Add(hardwareLine(1, "10", 4))
	before := e.Snapshot()
	e.Toggle()
	after := e.Snapshot()
	if !reflect.DeepEqual(before.Items, after.Items) || before.TotalItems != after.TotalItems {
		t.Fatal("visibility transitions must not touch items")
	}
}

func TestRepeatedAddNeverExceedsMax(t *testing.T) {
	e := NewEngine()

	in := hardwareLine(1, "5", 7)
	for i := 0; i < 20; i++ {
		in.Quantity = 3
		e.Add(in)
	}

	snap := e.Snapshot()
	if snap.Items[0].Quantity != 7 {
		t.Fatalf("expected quantity pinned at max 7, got %d", snap.Items[0].Quantity)
	}
	if snap.TotalItems != 7 || !snap.TotalPrice.Equal(price("35")) {
		t.Fatalf("unexpected totals items=%d price=%s", snap.TotalItems, snap.TotalPrice)
	}
}

func TestDocumentedClampScenario(t *testing.T) {
	e := NewEngine()

	in := hardwareLine(1, "100", 2)
	e.Add(in)
	snap := e.Snapshot()
	if snap.TotalItems != 1 || !snap.TotalPrice.Equal(price("100")) {
		t.Fatalf("after first add: items=%d price=%s", snap.TotalItems, snap.TotalPrice)
	}

	in.Quantity = 5
	e.Add(in)
	snap = e.Snapshot()
	if snap.Items[0].Quantity != 2 || snap.TotalItems != 2 || !snap.TotalPrice.Equal(price("200")) {
		t.Fatalf("after clamped add: %+v", snap)
	}

	e.UpdateQuantity(1, -3, nil)
	snap = e.Snapshot()
	if snap.Items[0].Quantity != 1 || snap.TotalItems != 1 || !snap.TotalPrice.Equal(price("100")) {
		t.Fatalf("after floored update: %+v", snap)
	}

	e.Remove(1, nil)
	snap = e.Snapshot()
	if len(snap.Items) != 0 || snap.TotalItems != 0 || !snap.TotalPrice.IsZero() {
		t.Fatalf("after remove: %+v", snap)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	e := NewEngine()
	in := hardwareLine(1, "10", 4)
	in.SelectedAttributes = map[string]string{"color": "red"}
	e.Add(in)

	snap := e.Snapshot()
	snap.Items[0].Quantity = 99
	snap.Items[0].SelectedAttributes["color"] = "green"

	fresh := e.Snapshot()
	if fresh.Items[0].Quantity != 1 {
		t.Fatal("mutating a snapshot leaked into the engine")
	}
	if fresh.Items[0].SelectedAttributes["color"] != "red" {
		t.Fatal("mutating snapshot attributes leaked into the engine")
	}
}

func TestRestoreNormalizesStoredLines(t *testing.T) {
	e := NewEngine()

	e.Restore([]Line{
		{ProductID: 1, UnitPrice: price("10"), Quantity: 0, MaxQuantity: 5},
		{ProductID: 2, UnitPrice: price("20"), Quantity: 9, MaxQuantity: 3},
		{ProductID: 3, UnitPrice: price("5"), Quantity: 2, MaxQuantity: 0},
	})

	snap := e.Snapshot()
	if snap.Items[0].Quantity != 1 {
		t.Fatalf("zero quantity should floor to 1, got %d", snap.Items[0].Quantity)
	}
	if snap.Items[1].Quantity != 3 {
		t.Fatalf("over-max quantity should clamp, got %d", snap.Items[1].Quantity)
	}
	if snap.Items[2].MaxQuantity != 1 || snap.Items[2].Quantity != 1 {
		t.Fatalf("non-positive max should floor, got %+v", snap.Items[2])
	}
	if snap.TotalItems != 1+3+1 {
		t.Fatalf("totals must be recomputed after restore, got %d", snap.TotalItems)
	}
}
