package repo

import (
	"context"
	"sync"

	"github.com/bloomnext/pos-inventory/internal/models"
)

// InMemoryMovementRepository is an in-memory ledger used by the test suites.
type InMemoryMovementRepository struct {
	mu        sync.Mutex
	movements []models.Movement
	nextID    int
}

func NewInMemoryMovementRepository() *InMemoryMovementRepository {
	return &InMemoryMovementRepository{nextID: 1}
}

func (r *InMemoryMovementRepository) GetByProductID(_ context.Context, productID, limit int) ([]models.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []models.Movement
	// newest first: walk the append-only log backwards
	for i := len(r.movements) - 1; i >= 0 && len(result) < ClampHistoryLimit(limit); i-- {
		if r.movements[i].ProductID == productID {
			result = append(result, r.movements[i])
		}
	}
	return result, nil
}

// All returns every recorded movement for a product in append (id) order;
// test helper for ledger replay checks.
func (r *InMemoryMovementRepository) All(productID int) []models.Movement {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []models.Movement
	for _, m := range r.movements {
		if m.ProductID == productID {
			result = append(result, m)
		}
	}
	return result
}

// Clear removes all movements; test cleanup helper.
func (r *InMemoryMovementRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = nil
	r.nextID = 1
}

func (r *InMemoryMovementRepository) add(m models.Movement) models.Movement {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID
	r.nextID++
	r.movements = append(r.movements, m)
	return m
}
