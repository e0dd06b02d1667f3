package repo

import (
	"context"

	"github.com/bloomnext/pos-inventory/internal/models"
)

// History limits for ledger queries.
const (
	DefaultHistoryLimit = 100
	MaxHistoryLimit     = 500
)

// MovementRepository reads the append-only stock ledger. Entries are only
// ever written by the stock mutation transaction, never directly.
type MovementRepository interface {
	// GetByProductID returns the product's movements, newest first.
	// The limit is clamped to [1, MaxHistoryLimit] with
	// DefaultHistoryLimit as the fallback.
	GetByProductID(ctx context.Context, productID, limit int) ([]models.Movement, error)
}

// ClampHistoryLimit bounds a requested history page size.
func ClampHistoryLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	return min(limit, MaxHistoryLimit)
}
