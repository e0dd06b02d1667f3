package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bloomnext/pos-inventory/internal/models"
	"github.com/bloomnext/pos-inventory/internal/repo"
)

// productFromRequest normalizes the payload into a Product: text fields are
// trimmed, empty optional strings become absent, unit and the boolean flags
// get their defaults, and dollar amounts become cents.
func productFromRequest(req ProductRequest) models.Product {
	unit := strings.TrimSpace(req.Unit)
	if unit == "" {
		unit = models.UnitEach
	}
	taxable := true
	if req.Taxable != nil {
		taxable = *req.Taxable
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return models.Product{
		Name:         strings.TrimSpace(req.Name),
		Barcode:      strings.TrimSpace(req.Barcode),
		SKU:          strings.TrimSpace(req.SKU),
		Category:     strings.TrimSpace(req.Category),
		Unit:         unit,
		PriceCents:   models.DollarsToCents(req.Price),
		CostCents:    models.DollarsToCents(req.Cost),
		Taxable:      taxable,
		StockQty:     req.StockQty,
		ReorderLevel: req.ReorderLevel,
		Active:       active,
	}
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the catalog
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Failure 409 {string} string "Barcode conflict"
// @Router /api/products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateProduct(req); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	product := productFromRequest(req)
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	created, err := h.products.Create(r.Context(), product)
	if err != nil {
		if errors.Is(err, repo.ErrBarcodeConflict) {
			http.Error(w, "barcode already exists, use a different barcode", http.StatusConflict)
			return
		}
		log.Printf("could not create product: %v", err)
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(created))
}

// GetProductsHandler godoc
// @Summary List products with combinable filters
// @Tags products
// @Produce json
// @Param active_only query bool false "Only active products"
// @Param low_stock_only query bool false "Only products at or below reorder level"
// @Param q query string false "Search name/sku/barcode"
// @Param category query string false "Exact category match"
// @Param limit query int false "Result cap (1..1000, default 200)"
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /api/products [get]
func (h *Handler) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if limitStr := q.Get("limit"); limitStr != "" {
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

	filter := repo.ProductFilter{
		ActiveOnly:   q.Get("active_only") == "true",
		LowStockOnly: q.Get("low_stock_only") == "true",
		Category:     strings.TrimSpace(q.Get("category")),
		Query:        strings.TrimSpace(q.Get("q")),
		Limit:        limit,
	}

	products, err := h.products.Filter(r.Context(), filter)
	if err != nil {
		log.Printf("could not filter products: %v", err)
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, response)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /api/products/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		log.Printf("could not fetch product %d: %v", id, err)
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// LookupProductHandler godoc
// @Summary Look up an active product by barcode
// @Description POS scan path: a miss returns 200 with a null body, not an error
// @Tags products
// @Produce json
// @Param barcode query string true "Barcode"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Missing barcode"
// @Router /api/products/lookup [get]
func (h *Handler) LookupProductHandler(w http.ResponseWriter, r *http.Request) {
	barcode := strings.TrimSpace(r.URL.Query().Get("barcode"))
	if barcode == "" {
		http.Error(w, "barcode is required", http.StatusBadRequest)
		return
	}

	if h.lookup != nil {
		if p, ok := h.lookup.Get(r.Context(), barcode); ok {
			writeJSON(w, http.StatusOK, toProductResponse(p))
			return
		}
	}

	product, found, err := h.products.GetByBarcode(r.Context(), barcode)
	if err != nil {
		log.Printf("could not look up barcode %q: %v", barcode, err)
		http.Error(w, "could not look up product", http.StatusInternalServerError)
		return
	}
	if !found {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	if h.lookup != nil {
		if err := h.lookup.Set(r.Context(), product); err != nil {
			log.Printf("could not cache barcode %q: %v", barcode, err)
		}
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// UpdateProductHandler godoc
// @Summary Update a product (full replace)
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Barcode conflict"
// @Router /api/products/{id} [put]
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateProduct(req); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	previous, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	product := productFromRequest(req)
	product.ID = id
	product.CreatedAt = previous.CreatedAt
	product.UpdatedAt = time.Now().UTC()

	updated, err := h.products.Update(r.Context(), product)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrBarcodeConflict):
			http.Error(w, "barcode already exists, use a different barcode", http.StatusConflict)
		default:
			log.Printf("could not update product %d: %v", id, err)
			http.Error(w, "could not update product", http.StatusInternalServerError)
		}
		return
	}

	h.invalidateLookup(r, previous.Barcode, updated.Barcode)
	writeJSON(w, http.StatusOK, toProductResponse(updated))
}

// DeactivateProductHandler godoc
// @Summary Soft-delete a product
// @Description Sets active=false; the product stays addressable for ledger integrity
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]any
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /api/products/{id} [delete]
func (h *Handler) DeactivateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	if err := h.products.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		log.Printf("could not deactivate product %d: %v", id, err)
		http.Error(w, "could not deactivate product", http.StatusInternalServerError)
		return
	}

	h.invalidateLookup(r, product.Barcode, "")
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "Product deactivated (soft delete)",
	})
}

func productID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// invalidateLookup drops stale scan-cache entries for the barcodes a
// mutation may have touched.
func (h *Handler) invalidateLookup(r *http.Request, barcodes ...string) {
	if h.lookup == nil {
		return
	}
	for _, barcode := range barcodes {
		if err := h.lookup.Invalidate(r.Context(), barcode); err != nil {
			log.Printf("could not invalidate lookup cache for %q: %v", barcode, err)
		}
	}
}
