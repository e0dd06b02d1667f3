package handlers

import (
	"time"

	"github.com/bloomnext/pos-inventory/internal/models"
)

// ProductRequest is the create/update payload. Prices cross the boundary as
// decimal dollars; Taxable and Active default to true when omitted.
type ProductRequest struct {
	Name         string  `json:"name"`
	Barcode      string  `json:"barcode,omitempty"`
	SKU          string  `json:"sku,omitempty"`
	Category     string  `json:"category,omitempty"`
	Unit         string  `json:"unit,omitempty"`
	Price        float64 `json:"price"`
	Cost         float64 `json:"cost"`
	Taxable      *bool   `json:"taxable,omitempty"`
	StockQty     int     `json:"stock_qty"`
	ReorderLevel int     `json:"reorder_level"`
	Active       *bool   `json:"active,omitempty"`
}

type ProductResponse struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Barcode      string  `json:"barcode,omitempty"`
	SKU          string  `json:"sku,omitempty"`
	Category     string  `json:"category,omitempty"`
	Unit         string  `json:"unit"`
	Price        float64 `json:"price"`
	Cost         float64 `json:"cost"`
	Taxable      bool    `json:"taxable"`
	StockQty     int     `json:"stock_qty"`
	ReorderLevel int     `json:"reorder_level"`
	Active       bool    `json:"active"`
	LowStock     bool    `json:"low_stock"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Barcode:      p.Barcode,
		SKU:          p.SKU,
		Category:     p.Category,
		Unit:         p.Unit,
		Price:        models.CentsToDollars(p.PriceCents),
		Cost:         models.CentsToDollars(p.CostCents),
		Taxable:      p.Taxable,
		StockQty:     p.StockQty,
		ReorderLevel: p.ReorderLevel,
		Active:       p.Active,
		LowStock:     p.LowStock(),
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
}

// StockAdjustRequest drives both adjust and receive.
type StockAdjustRequest struct {
	DeltaQty int    `json:"delta_qty"`
	Note     string `json:"note,omitempty"`
}

// StockSetRequest carries the absolute target quantity. NewQty is a pointer
// so a missing field is distinguishable from an explicit zero.
type StockSetRequest struct {
	NewQty *int   `json:"new_qty"`
	Note   string `json:"note,omitempty"`
}

type MovementResponse struct {
	ID           int    `json:"id"`
	ProductID    int    `json:"product_id"`
	Type         string `json:"type"`
	DeltaQty     int    `json:"delta_qty"`
	ResultingQty int    `json:"resulting_qty"`
	Note         string `json:"note,omitempty"`
	CreatedAt    string `json:"created_at"`
}

func toMovementResponse(m models.Movement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Type:         m.Type,
		DeltaQty:     m.DeltaQty,
		ResultingQty: m.ResultingQty,
		Note:         m.Note,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
	}
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors,omitempty"`
}
