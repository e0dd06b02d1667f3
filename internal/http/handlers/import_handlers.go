package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bloomnext/pos-inventory/internal/repo"
)

// csvColumns maps header names to ProductRequest fields. Only name and
// price are required; everything else falls back to its default.
var csvColumns = []string{"name", "barcode", "sku", "category", "unit", "price", "cost", "stock_qty", "reorder_level"}

func parseCSV(file multipart.File) ([]ProductRequest, error) {
	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["name"]; !ok {
		return nil, fmt.Errorf("CSV header must include a name column")
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []ProductRequest
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		rows = append(rows, ProductRequest{
			Name:         field(record, "name"),
			Barcode:      field(record, "barcode"),
			SKU:          field(record, "sku"),
			Category:     field(record, "category"),
			Unit:         field(record, "unit"),
			Price:        parseFloat(field(record, "price")),
			Cost:         parseFloat(field(record, "cost")),
			StockQty:     parseInt(field(record, "stock_qty")),
			ReorderLevel: parseInt(field(record, "reorder_level")),
		})
	}
	return rows, nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

// ImportProductsHandler godoc
// @Summary Bulk import products from CSV
// @Description Columns: name, barcode, sku, category, unit, price, cost, stock_qty, reorder_level. The file is rejected wholesale if any row fails validation.
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 201 {object} ImportProductsResult
// @Failure 400 {object} ImportProductsResult
// @Router /api/products/import [post]
func (h *Handler) ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(rows) == 0 {
		http.Error(w, "CSV contains no rows", http.StatusBadRequest)
		return
	}

	var rowErrors []ProductValidationError
	for i, row := range rows {
		for _, ve := range validateProduct(row) {
			rowErrors = append(rowErrors, ProductValidationError{
				Field:       ve.Field,
				Description: fmt.Sprintf("row %d: %s", i+1, ve.Description),
			})
		}
	}
	if len(rowErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, ImportProductsResult{Errors: rowErrors})
		return
	}

	result := ImportProductsResult{}
	for i, row := range rows {
		product := productFromRequest(row)
		now := time.Now().UTC()
		product.CreatedAt = now
		product.UpdatedAt = now

		if _, err := h.products.Create(r.Context(), product); err != nil {
			if errors.Is(err, repo.ErrBarcodeConflict) {
				result.Errors = append(result.Errors, ProductValidationError{
					Field:       "barcode",
					Description: fmt.Sprintf("row %d: barcode already exists", i+1),
				})
				continue
			}
			log.Printf("could not import row %d: %v", i+1, err)
			http.Error(w, "could not import products", http.StatusInternalServerError)
			return
		}
		result.ImportedProductsCount++
	}

	writeJSON(w, http.StatusCreated, result)
}
