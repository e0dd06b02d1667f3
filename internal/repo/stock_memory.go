package repo

import (
	"context"
	"sync"
	"time"

	"github.com/bloomnext/pos-inventory/internal/models"
)

// InMemoryStockRepository pairs the in-memory catalog and ledger. A single
// mutation lock stands in for the row lock the Postgres implementation takes.
type InMemoryStockRepository struct {
	mu        sync.Mutex
	products  *InMemoryProductRepository
	movements *InMemoryMovementRepository
}

func NewInMemoryStockRepository(products *InMemoryProductRepository, movements *InMemoryMovementRepository) *InMemoryStockRepository {
	return &InMemoryStockRepository{products: products, movements: movements}
}

func (r *InMemoryStockRepository) Adjust(ctx context.Context, productID, delta int, note string) (models.Product, error) {
	return r.mutate(ctx, productID, models.MovementAdjust, func(current int) (int, error) {
		newQty := current + delta
		if newQty < 0 {
			return 0, ErrStockBelowZero
		}
		return newQty, nil
	}, note)
}

func (r *InMemoryStockRepository) Receive(ctx context.Context, productID, delta int, note string) (models.Product, error) {
	if delta <= 0 {
		return models.Product{}, ErrNonPositiveReceive
	}
	return r.mutate(ctx, productID, models.MovementReceive, func(current int) (int, error) {
		return current + delta, nil
	}, note)
}

func (r *InMemoryStockRepository) Set(ctx context.Context, productID, newQty int, note string) (models.Product, error) {
	if newQty < 0 {
		return models.Product{}, ErrStockBelowZero
	}
	return r.mutate(ctx, productID, models.MovementSet, func(int) (int, error) {
		return newQty, nil
	}, note)
}

func (r *InMemoryStockRepository) mutate(ctx context.Context, productID int, movementType string, transition func(current int) (int, error), note string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.products.GetByID(ctx, productID)
	if err != nil {
		return models.Product{}, err
	}

	newQty, err := transition(current.StockQty)
	if err != nil {
		return models.Product{}, err
	}

	now := time.Now().UTC()
	p, err := r.products.setStock(productID, newQty, now)
	if err != nil {
		return models.Product{}, err
	}
	r.movements.add(models.Movement{
		ProductID:    productID,
		Type:         movementType,
		DeltaQty:     newQty - current.StockQty,
		ResultingQty: newQty,
		Note:         note,
		CreatedAt:    now,
	})
	return p, nil
}
