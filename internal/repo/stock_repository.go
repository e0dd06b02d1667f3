package repo

import (
	"context"

	"github.com/bloomnext/pos-inventory/internal/models"
)

// MaxStockQty bounds absolute quantities and adjustment magnitudes.
const MaxStockQty = 1_000_000

// StockRepository executes the three stock mutations. Each call applies the
// quantity change and appends the matching ledger entry as one atomic unit:
// either both writes commit or neither does. Concurrent mutations against
// the same product are serialized so the non-negative invariant holds.
type StockRepository interface {
	// Adjust applies a signed delta. Fails with ErrStockBelowZero when
	// the result would be negative, leaving stock and ledger untouched.
	Adjust(ctx context.Context, productID, delta int, note string) (models.Product, error)
	// Receive applies a strictly positive intake delta.
	Receive(ctx context.Context, productID, delta int, note string) (models.Product, error)
	// Set overwrites the quantity with an absolute non-negative target,
	// recording the computed difference in the ledger.
	Set(ctx context.Context, productID, newQty int, note string) (models.Product, error)
}
