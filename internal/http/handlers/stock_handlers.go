package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/bloomnext/pos-inventory/internal/models"
	"github.com/bloomnext/pos-inventory/internal/repo"
)

// AdjustStockHandler godoc
// @Summary Adjust stock by a signed delta
// @Description Applies delta_qty (positive or negative) and appends an 'adjust' ledger entry in the same transaction
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param adjustment body StockAdjustRequest true "Quantity change"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Stock cannot go below zero"
// @Failure 404 {string} string "Not found"
// @Router /api/products/{id}/stock/adjust [post]
func (h *Handler) AdjustStockHandler(w http.ResponseWriter, r *http.Request) {
	h.mutateStock(w, r, models.MovementAdjust)
}

// ReceiveStockHandler godoc
// @Summary Receive stock (positive intake only)
// @Description Applies a strictly positive delta_qty and appends a 'receive' ledger entry
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param receipt body StockAdjustRequest true "Received quantity"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "delta_qty must be positive"
// @Failure 404 {string} string "Not found"
// @Router /api/products/{id}/stock/receive [post]
func (h *Handler) ReceiveStockHandler(w http.ResponseWriter, r *http.Request) {
	h.mutateStock(w, r, models.MovementReceive)
}

// SetStockHandler godoc
// @Summary Set stock to an exact quantity
// @Description Inventory-count reset: records the difference to the target as a 'set' ledger entry
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param target body StockSetRequest true "Target quantity"
// @Success 200 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Failure 404 {string} string "Not found"
// @Router /api/products/{id}/stock/set [post]
func (h *Handler) SetStockHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req StockSetRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	note := strings.TrimSpace(req.Note)
	if validationErrors := validateSet(req.NewQty, note); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	product, err := h.stock.Set(r.Context(), id, *req.NewQty, note)
	if err != nil {
		h.respondStockError(w, id, err)
		return
	}
	h.finishStockMutation(w, r, product)
}

func (h *Handler) mutateStock(w http.ResponseWriter, r *http.Request, movementType string) {
	id, err := productID(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req StockAdjustRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	note := strings.TrimSpace(req.Note)
	if validationErrors := validateAdjustment(req.DeltaQty, note); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	var product models.Product
	switch movementType {
	case models.MovementReceive:
		product, err = h.stock.Receive(r.Context(), id, req.DeltaQty, note)
	default:
		product, err = h.stock.Adjust(r.Context(), id, req.DeltaQty, note)
	}
	if err != nil {
		h.respondStockError(w, id, err)
		return
	}
	h.finishStockMutation(w, r, product)
}

func (h *Handler) respondStockError(w http.ResponseWriter, id int, err error) {
	switch {
	case errors.Is(err, repo.ErrProductNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrStockBelowZero):
		http.Error(w, "stock cannot go below zero", http.StatusBadRequest)
	case errors.Is(err, repo.ErrNonPositiveReceive):
		http.Error(w, "receive requires delta_qty > 0", http.StatusBadRequest)
	default:
		log.Printf("stock mutation failed for product %d: %v", id, err)
		http.Error(w, "could not update stock", http.StatusInternalServerError)
	}
}

func (h *Handler) finishStockMutation(w http.ResponseWriter, r *http.Request, product models.Product) {
	if h.lookup != nil && product.Barcode != "" {
		if err := h.lookup.Invalidate(r.Context(), product.Barcode); err != nil {
			log.Printf("could not invalidate lookup cache for %q: %v", product.Barcode, err)
		}
	}
	if user := Username(r); user != "" {
		log.Printf("stock updated by %s: product %d (%s) qty=%d", user, product.ID, product.Name, product.StockQty)
	}
	if product.LowStock() {
		log.Printf("ALERT: product %d (%s) is at or below reorder level: qty=%d, reorder_level=%d",
			product.ID, product.Name, product.StockQty, product.ReorderLevel)
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}
