package handlers

import (
	"fmt"
	"strings"

	"github.com/bloomnext/pos-inventory/internal/models"
	"github.com/bloomnext/pos-inventory/internal/repo"
)

const (
	maxNameLen      = 200
	maxTextFieldLen = 100
	maxNoteLen      = 300
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "name", Description: "Name is required"})
	}
	if len(p.Name) > maxNameLen {
		errs = append(errs, ProductValidationError{Field: "name", Description: fmt.Sprintf("Name must be at most %d characters", maxNameLen)})
	}
	for field, value := range map[string]string{"barcode": p.Barcode, "sku": p.SKU, "category": p.Category} {
		if len(value) > maxTextFieldLen {
			errs = append(errs, ProductValidationError{Field: field, Description: fmt.Sprintf("%s must be at most %d characters", field, maxTextFieldLen)})
		}
	}
	if p.Unit != "" && !models.ValidUnit(p.Unit) {
		errs = append(errs, ProductValidationError{Field: "unit", Description: "Unit must be one of: each, bunch, box, stem, kg"})
	}
	if p.Price < 0 {
		errs = append(errs, ProductValidationError{Field: "price", Description: "Price cannot be negative"})
	}
	if p.Cost < 0 {
		errs = append(errs, ProductValidationError{Field: "cost", Description: "Cost cannot be negative"})
	}
	if p.StockQty < 0 || p.StockQty > repo.MaxStockQty {
		errs = append(errs, ProductValidationError{Field: "stock_qty", Description: fmt.Sprintf("Stock quantity must be between 0 and %d", repo.MaxStockQty)})
	}
	if p.ReorderLevel < 0 || p.ReorderLevel > repo.MaxStockQty {
		errs = append(errs, ProductValidationError{Field: "reorder_level", Description: fmt.Sprintf("Reorder level must be between 0 and %d", repo.MaxStockQty)})
	}
	return errs
}

func validateAdjustment(deltaQty int, note string) []ProductValidationError {
	errs := []ProductValidationError{}
	if deltaQty < -repo.MaxStockQty || deltaQty > repo.MaxStockQty {
		errs = append(errs, ProductValidationError{Field: "delta_qty", Description: fmt.Sprintf("Delta magnitude must be at most %d", repo.MaxStockQty)})
	}
	if len(note) > maxNoteLen {
		errs = append(errs, ProductValidationError{Field: "note", Description: fmt.Sprintf("Note must be at most %d characters", maxNoteLen)})
	}
	return errs
}

func validateSet(newQty *int, note string) []ProductValidationError {
	errs := []ProductValidationError{}
	if newQty == nil {
		errs = append(errs, ProductValidationError{Field: "new_qty", Description: "New quantity is required"})
	} else if *newQty < 0 || *newQty > repo.MaxStockQty {
		errs = append(errs, ProductValidationError{Field: "new_qty", Description: fmt.Sprintf("New quantity must be between 0 and %d", repo.MaxStockQty)})
	}
	if len(note) > maxNoteLen {
		errs = append(errs, ProductValidationError{Field: "note", Description: fmt.Sprintf("Note must be at most %d characters", maxNoteLen)})
	}
	return errs
}
