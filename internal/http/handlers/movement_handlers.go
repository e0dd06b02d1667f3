package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/bloomnext/pos-inventory/internal/repo"
)

// GetInventoryHistoryHandler godoc
// @Summary Inventory ledger for a product
// @Description Returns stock movements newest first
// @Tags movements
// @Produce json
// @Param id path int true "Product ID"
// @Param limit query int false "Result cap (1..500, default 100)"
// @Success 200 {array} MovementResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Product not found"
// @Router /api/products/{id}/inventory [get]
func (h *Handler) GetInventoryHistoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	// history of a missing product is an error, unlike an empty ledger
	if _, err := h.products.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil {
			http.Error(w, "invalid limit format", http.StatusBadRequest)
			return
		}
		// an explicit limit is clamped to the range; only an absent
		// parameter falls back to the default
		if v < 1 {
			v = 1
		}
		limit = v
	}

	movements, err := h.movements.GetByProductID(r.Context(), id, limit)
	if err != nil {
		log.Printf("could not retrieve movements for product %d: %v", id, err)
		http.Error(w, "could not retrieve movements", http.StatusInternalServerError)
		return
	}

	response := make([]MovementResponse, len(movements))
	for i, m := range movements {
		response[i] = toMovementResponse(m)
	}
	writeJSON(w, http.StatusOK, response)
}
