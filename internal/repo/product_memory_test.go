package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bloomnext/pos-inventory/internal/models"
)

func seedProduct(t *testing.T, r *InMemoryProductRepository, name, barcode, category string, stockQty, reorderLevel int, active bool) models.Product {
	t.Helper()
	now := time.Now().UTC()
	p, err := r.Create(context.Background(), models.Product{
		Name:         name,
		Barcode:      barcode,
		Category:     category,
		Unit:         models.UnitEach,
		StockQty:     stockQty,
		ReorderLevel: reorderLevel,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("failed to seed product %q: %v", name, err)
	}
	return p
}

func TestBarcodeUniqueness(t *testing.T) {
	r := NewInMemoryProductRepository()
	ctx := context.Background()

	seedProduct(t, r, "Tulips", "111222333", "", 0, 0, true)

	_, err := r.Create(ctx, models.Product{Name: "Other Tulips", Barcode: "111222333", Active: true})
	if !errors.Is(err, ErrBarcodeConflict) {
		t.Fatalf("duplicate barcode create: err = %v, want ErrBarcodeConflict", err)
	}

	// two products without a barcode never conflict
	seedProduct(t, r, "Loose Stems A", "", "", 0, 0, true)
	seedProduct(t, r, "Loose Stems B", "", "", 0, 0, true)
}

func TestBarcodeUniquenessCoversInactiveProducts(t *testing.T) {
	r := NewInMemoryProductRepository()
	ctx := context.Background()

	p := seedProduct(t, r, "Retired SKU", "999", "", 0, 0, true)
	if err := r.Deactivate(ctx, p.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	// the deactivated product's barcode is not freed
	if _, err := r.Create(ctx, models.Product{Name: "Reuse Attempt", Barcode: "999", Active: true}); !errors.Is(err, ErrBarcodeConflict) {
		t.Fatalf("err = %v, want ErrBarcodeConflict", err)
	}
}

func TestUpdateBarcodeConflictWithOtherProduct(t *testing.T) {
	r := NewInMemoryProductRepository()
	ctx := context.Background()

	seedProduct(t, r, "First", "aaa", "", 0, 0, true)
	second := seedProduct(t, r, "Second", "bbb", "", 0, 0, true)

	second.Barcode = "aaa"
	if _, err := r.Update(ctx, second); !errors.Is(err, ErrBarcodeConflict) {
		t.Fatalf("err = %v, want ErrBarcodeConflict", err)
	}

	// keeping its own barcode is not a conflict
	second.Barcode = "bbb"
	if _, err := r.Update(ctx, second); err != nil {
		t.Fatalf("self-update failed: %v", err)
	}
}

func TestDeactivateIsIdempotent(t *testing.T) {
	r := NewInMemoryProductRepository()
	ctx := context.Background()

	p := seedProduct(t, r, "Fern", "", "", 0, 0, true)
	if err := r.Deactivate(ctx, p.ID); err != nil {
		t.Fatalf("first deactivate failed: %v", err)
	}
	if err := r.Deactivate(ctx, p.ID); err != nil {
		t.Fatalf("second deactivate failed: %v", err)
	}
	got, _ := r.GetByID(ctx, p.ID)
	if got.Active {
		t.Error("product still active after deactivation")
	}

	if err := r.Deactivate(ctx, 404); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

func TestFilterCombinations(t *testing.T) {
	r := NewInMemoryProductRepository()
	ctx := context.Background()

	seedProduct(t, r, "Red Roses", "R-100", "flowers", 3, 5, true) // low stock
	seedProduct(t, r, "White Roses", "R-200", "flowers", 50, 5, true)
	seedProduct(t, r, "Vase Classic", "V-100", "accessories", 2, 2, true) // low stock
	seedProduct(t, r, "Old Wrap", "W-100", "accessories", 0, 0, false)    // inactive, low stock

	tests := []struct {
		name   string
		filter ProductFilter
		want   []string
	}{
		{"no filters, newest first", ProductFilter{}, []string{"Old Wrap", "Vase Classic", "White Roses", "Red Roses"}},
		{"active only", ProductFilter{ActiveOnly: true}, []string{"Vase Classic", "White Roses", "Red Roses"}},
		{"low stock only", ProductFilter{LowStockOnly: true}, []string{"Old Wrap", "Vase Classic", "Red Roses"}},
		{"active and low stock", ProductFilter{ActiveOnly: true, LowStockOnly: true}, []string{"Vase Classic", "Red Roses"}},
		{"category", ProductFilter{Category: "flowers"}, []string{"White Roses", "Red Roses"}},
		{"search by name fragment", ProductFilter{Query: "roses"}, []string{"White Roses", "Red Roses"}},
		{"search by barcode fragment", ProductFilter{Query: "v-1"}, []string{"Vase Classic"}},
		{"no matches is empty, not an error", ProductFilter{Category: "nope"}, nil},
		{"limit caps results", ProductFilter{Limit: 2}, []string{"Old Wrap", "Vase Classic"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Filter(ctx, tt.filter)
			if err != nil {
				t.Fatalf("filter failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d products, want %d", len(got), len(tt.want))
			}
			for i, p := range got {
				if p.Name != tt.want[i] {
					t.Errorf("result[%d] = %q, want %q", i, p.Name, tt.want[i])
				}
			}
		})
	}
}

func TestFilterLimitClamp(t *testing.T) {
	if got := (ProductFilter{}).ClampedLimit(); got != DefaultListLimit {
		t.Errorf("default limit = %d, want %d", got, DefaultListLimit)
	}
	if got := (ProductFilter{Limit: 5000}).ClampedLimit(); got != MaxListLimit {
		t.Errorf("clamped limit = %d, want %d", got, MaxListLimit)
	}
	if got := (ProductFilter{Limit: 7}).ClampedLimit(); got != 7 {
		t.Errorf("limit = %d, want 7", got)
	}
}

func TestGetByBarcodeOnlyMatchesActive(t *testing.T) {
	r := NewInMemoryProductRepository()
	ctx := context.Background()

	p := seedProduct(t, r, "Scan Me", "555", "", 1, 0, true)

	got, found, err := r.GetByBarcode(ctx, "555")
	if err != nil || !found {
		t.Fatalf("lookup failed: found=%v err=%v", found, err)
	}
	if got.ID != p.ID {
		t.Errorf("lookup returned product %d, want %d", got.ID, p.ID)
	}

	if err := r.Deactivate(ctx, p.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, found, _ := r.GetByBarcode(ctx, "555"); found {
		t.Error("lookup matched an inactive product")
	}

	// a miss is a normal outcome, not an error
	if _, found, err := r.GetByBarcode(ctx, "does-not-exist"); found || err != nil {
		t.Errorf("miss: found=%v err=%v, want false nil", found, err)
	}
}
