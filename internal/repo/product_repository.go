package repo

import (
	"context"

	"github.com/bloomnext/pos-inventory/internal/models"
)

// ProductRepository defines the interface for catalog data operations.
type ProductRepository interface {
	Create(ctx context.Context, p models.Product) (models.Product, error)
	GetByID(ctx context.Context, id int) (models.Product, error)
	// Update rewrites every field of the product (full-record replace).
	Update(ctx context.Context, p models.Product) (models.Product, error)
	// Deactivate soft-deletes the product. Deactivating an already
	// inactive product succeeds.
	Deactivate(ctx context.Context, id int) error
	Filter(ctx context.Context, f ProductFilter) ([]models.Product, error)
	// GetByBarcode looks up an active product by barcode. A miss is a
	// normal outcome on the POS scan path, so it is reported with the
	// bool rather than an error.
	GetByBarcode(ctx context.Context, barcode string) (models.Product, bool, error)
}
