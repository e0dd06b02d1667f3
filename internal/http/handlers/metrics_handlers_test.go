package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	handler "github.com/bloomnext/pos-inventory/internal/http/handlers"
	"github.com/bloomnext/pos-inventory/internal/repo"
)

func TestGetDashboardMetricsHandler(t *testing.T) {
	env := newTestEnv(t)

	roses := env.createProduct(t, handler.ProductRequest{Name: "Roses", StockQty: 2, ReorderLevel: 5})
	vase := env.createProduct(t, handler.ProductRequest{Name: "Vase", StockQty: 20})

	for i := 0; i < 3; i++ {
		if w := env.receiveStock(roses.ID, handler.StockAdjustRequest{DeltaQty: 1}); w.Code != http.StatusOK {
			t.Fatalf("receive failed with status %d", w.Code)
		}
	}
	if w := env.adjustStock(vase.ID, handler.StockAdjustRequest{DeltaQty: -1}); w.Code != http.StatusOK {
		t.Fatalf("adjust failed with status %d", w.Code)
	}

	w := env.do(http.MethodGet, "/api/metrics/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var m repo.Metrics
	if err := json.NewDecoder(w.Body).Decode(&m); err != nil {
		t.Fatalf("error decoding metrics: %v", err)
	}
	if m.TotalProducts != 2 {
		t.Errorf("expected 2 products, got %d", m.TotalProducts)
	}
	if m.TotalMovements != 4 {
		t.Errorf("expected 4 movements, got %d", m.TotalMovements)
	}
	// roses finished at 5 with reorder level 5
	if m.LowStockCount != 1 {
		t.Errorf("expected 1 low-stock product, got %d", m.LowStockCount)
	}
	if m.MostMovedProduct.Name != "Roses" || m.MostMovedProduct.MovementCount != 3 {
		t.Errorf("expected most moved product Roses with 3 movements, got %+v", m.MostMovedProduct)
	}
}
