package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	handler "github.com/bloomnext/pos-inventory/internal/http/handlers"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	env := newTestEnv(t)

	resp := env.createProduct(t, handler.ProductRequest{
		Name:         "Red Roses (dozen)",
		Barcode:      "4006381333931",
		Category:     "flowers",
		Unit:         "bunch",
		Price:        24.99,
		Cost:         11.505,
		StockQty:     10,
		ReorderLevel: 5,
	})

	if resp.Name != "Red Roses (dozen)" {
		t.Errorf("expected name 'Red Roses (dozen)', got %q", resp.Name)
	}
	if resp.Price != 24.99 {
		t.Errorf("expected price 24.99, got %v", resp.Price)
	}
	// 11.505 dollars rounds half away from zero to 1151 cents
	if resp.Cost != 11.51 {
		t.Errorf("expected cost 11.51, got %v", resp.Cost)
	}
	if !resp.Taxable || !resp.Active {
		t.Errorf("expected taxable and active to default to true, got %v/%v", resp.Taxable, resp.Active)
	}
	if resp.LowStock {
		t.Error("stock 10 with reorder level 5 should not be low stock")
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	env := newTestEnv(t)

	longText := strings.Repeat("x", 101)

	tests := []struct {
		name           string
		payload        handler.ProductRequest
		expectedFields []string
	}{
		{
			name:           "empty name and negative price",
			payload:        handler.ProductRequest{Name: "", Price: -1},
			expectedFields: []string{"name", "price"},
		},
		{
			name:           "name too long",
			payload:        handler.ProductRequest{Name: strings.Repeat("a", 201), Price: 1},
			expectedFields: []string{"name"},
		},
		{
			name:           "oversized text fields",
			payload:        handler.ProductRequest{Name: "ok", Barcode: longText, SKU: longText, Category: longText},
			expectedFields: []string{"barcode", "sku", "category"},
		},
		{
			name:           "unknown unit",
			payload:        handler.ProductRequest{Name: "ok", Unit: "pallet"},
			expectedFields: []string{"unit"},
		},
		{
			name:           "stock quantity out of range",
			payload:        handler.ProductRequest{Name: "ok", StockQty: 1_000_001},
			expectedFields: []string{"stock_qty"},
		},
		{
			name:           "negative reorder level",
			payload:        handler.ProductRequest{Name: "ok", ReorderLevel: -1},
			expectedFields: []string{"reorder_level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/api/products", tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
			}

			var resp []handler.ProductValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			for _, field := range tt.expectedFields {
				found := false
				for _, ve := range resp {
					if ve.Field == field {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected a validation error for field %q, got %v", field, resp)
				}
			}
		})
	}
}

func TestCreateProductHandler_MalformedJSON(t *testing.T) {
	env := newTestEnv(t)

	badJSON := `{"name": "Broken" "price": 1}` // missing comma
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(badJSON))
	req.Header.Set("Authorization", "Bearer "+env.token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestCreateProductHandler_BarcodeConflict(t *testing.T) {
	env := newTestEnv(t)

	env.createProduct(t, handler.ProductRequest{Name: "Tulips", Barcode: "111", Price: 9.99})

	w := env.do(http.MethodPost, "/api/products", handler.ProductRequest{Name: "More Tulips", Barcode: "111", Price: 8.99})
	if w.Code != http.StatusConflict {
		t.Errorf("expected status 409 for duplicate barcode, got %d", w.Code)
	}
}

func TestCreateProductHandler_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	body, _ := json.Marshal(handler.ProductRequest{Name: "No Token", Price: 1})
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 without token, got %d", w.Code)
	}
}

func TestGetProductByIDHandler(t *testing.T) {
	env := newTestEnv(t)

	created := env.createProduct(t, handler.ProductRequest{Name: "Fern", Price: 5})

	w := env.do(http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got := decodeProduct(t, w); got.Name != "Fern" {
		t.Errorf("expected name 'Fern', got %q", got.Name)
	}

	if w := env.do(http.MethodGet, "/api/products/9999", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for missing product, got %d", w.Code)
	}
	if w := env.do(http.MethodGet, "/api/products/abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for non-numeric ID, got %d", w.Code)
	}
}

func TestGetProductsHandler_Filters(t *testing.T) {
	env := newTestEnv(t)

	env.createProduct(t, handler.ProductRequest{Name: "Red Roses", Category: "flowers", StockQty: 2, ReorderLevel: 5})
	env.createProduct(t, handler.ProductRequest{Name: "White Roses", Category: "flowers", StockQty: 50, ReorderLevel: 5})
	vase := env.createProduct(t, handler.ProductRequest{Name: "Vase", Category: "accessories", StockQty: 20})
	env.do(http.MethodDelete, fmt.Sprintf("/api/products/%d", vase.ID), nil)

	list := func(t *testing.T, query string) []handler.ProductResponse {
		t.Helper()
		w := env.do(http.MethodGet, "/api/products"+query, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp []handler.ProductResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		return resp
	}

	if got := list(t, ""); len(got) != 3 {
		t.Errorf("unfiltered list: expected 3 products, got %d", len(got))
	}
	if got := list(t, "?active_only=true"); len(got) != 2 {
		t.Errorf("active_only: expected 2 products, got %d", len(got))
	}
	if got := list(t, "?low_stock_only=true&active_only=true"); len(got) != 1 || got[0].Name != "Red Roses" {
		t.Errorf("low_stock_only: expected only 'Red Roses', got %v", got)
	}
	if got := list(t, "?category=flowers&q=white"); len(got) != 1 || got[0].Name != "White Roses" {
		t.Errorf("category+q: expected only 'White Roses', got %v", got)
	}
	if got := list(t, "?limit=1"); len(got) != 1 {
		t.Errorf("limit=1: expected 1 product, got %d", len(got))
	}
	// an explicit non-positive limit is clamped to 1, not defaulted
	if got := list(t, "?limit=0"); len(got) != 1 {
		t.Errorf("limit=0: expected 1 product, got %d", len(got))
	}
	if got := list(t, "?limit=-5"); len(got) != 1 {
		t.Errorf("limit=-5: expected 1 product, got %d", len(got))
	}
	if got := list(t, "?category=tools"); len(got) != 0 {
		t.Errorf("no matches: expected empty list, got %d products", len(got))
	}

	if w := env.do(http.MethodGet, "/api/products?limit=abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for invalid limit, got %d", w.Code)
	}
}

func TestLookupProductHandler(t *testing.T) {
	env := newTestEnv(t)

	created := env.createProduct(t, handler.ProductRequest{Name: "Scan Me", Barcode: "777", Price: 3.5})

	w := env.do(http.MethodGet, "/api/products/lookup?barcode=777", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got := decodeProduct(t, w); got.ID != created.ID {
		t.Errorf("expected product %d, got %d", created.ID, got.ID)
	}

	// a miss is 200 with a null body, not 404
	w = env.do(http.MethodGet, "/api/products/lookup?barcode=000", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 on miss, got %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "null" {
		t.Errorf("expected null body on miss, got %q", body)
	}

	if w := env.do(http.MethodGet, "/api/products/lookup", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 without barcode, got %d", w.Code)
	}
}

func TestUpdateProductHandler(t *testing.T) {
	env := newTestEnv(t)

	created := env.createProduct(t, handler.ProductRequest{Name: "Old Name", Barcode: "123", Price: 10})
	env.createProduct(t, handler.ProductRequest{Name: "Neighbor", Barcode: "456", Price: 10})

	w := env.do(http.MethodPut, fmt.Sprintf("/api/products/%d", created.ID), handler.ProductRequest{
		Name:  "New Name",
		Price: 12.5,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	updated := decodeProduct(t, w)
	if updated.Name != "New Name" || updated.Price != 12.5 {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.Barcode != "" {
		t.Errorf("full replace should have cleared the barcode, got %q", updated.Barcode)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Errorf("created_at changed on update: %q -> %q", created.CreatedAt, updated.CreatedAt)
	}

	// stealing another product's barcode is a conflict
	w = env.do(http.MethodPut, fmt.Sprintf("/api/products/%d", created.ID), handler.ProductRequest{Name: "New Name", Barcode: "456", Price: 12.5})
	if w.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", w.Code)
	}

	w = env.do(http.MethodPut, "/api/products/9999", handler.ProductRequest{Name: "Ghost", Price: 1})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestDeactivateProductHandler(t *testing.T) {
	env := newTestEnv(t)

	created := env.createProduct(t, handler.ProductRequest{Name: "Retiring", Barcode: "888", Price: 1})

	w := env.do(http.MethodDelete, fmt.Sprintf("/api/products/%d", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	// still addressable by ID, just inactive
	w = env.do(http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got := decodeProduct(t, w); got.Active {
		t.Error("product still active after delete")
	}

	// but gone from the scan path
	w = env.do(http.MethodGet, "/api/products/lookup?barcode=888", nil)
	if body := strings.TrimSpace(w.Body.String()); body != "null" {
		t.Errorf("expected null lookup for deactivated product, got %q", body)
	}

	if w := env.do(http.MethodDelete, "/api/products/9999", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
