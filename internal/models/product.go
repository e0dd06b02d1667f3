package models

import "time"

// Valid units of sale for a catalog product.
const (
	UnitEach  = "each"
	UnitBunch = "bunch"
	UnitBox   = "box"
	UnitStem  = "stem"
	UnitKg    = "kg"
)

// ValidUnit reports whether unit is one of the supported units of sale.
func ValidUnit(unit string) bool {
	switch unit {
	case UnitEach, UnitBunch, UnitBox, UnitStem, UnitKg:
		return true
	}
	return false
}

// Product represents a catalog product. Monetary amounts are stored as
// integer cents; conversion to dollars happens at the API boundary.
type Product struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Barcode      string    `json:"barcode,omitempty"`
	SKU          string    `json:"sku,omitempty"`
	Category     string    `json:"category,omitempty"`
	Unit         string    `json:"unit"`
	PriceCents   int       `json:"price_cents"`
	CostCents    int       `json:"cost_cents"`
	Taxable      bool      `json:"taxable"`
	StockQty     int       `json:"stock_qty"`
	ReorderLevel int       `json:"reorder_level"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LowStock reports whether the product is at or below its reorder level.
func (p Product) LowStock() bool {
	return p.StockQty <= p.ReorderLevel
}
