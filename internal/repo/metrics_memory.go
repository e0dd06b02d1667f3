package repo

import "context"

// InMemoryMetricsRepository derives dashboard metrics from the in-memory
// catalog and ledger.
type InMemoryMetricsRepository struct {
	products  *InMemoryProductRepository
	movements *InMemoryMovementRepository
}

func NewInMemoryMetricsRepository(products *InMemoryProductRepository, movements *InMemoryMovementRepository) *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{products: products, movements: movements}
}

func (r *InMemoryMetricsRepository) GetDashboardMetrics(_ context.Context) (Metrics, error) {
	var m Metrics

	r.products.mu.Lock()
	counts := map[int]string{}
	for _, p := range r.products.products {
		m.TotalProducts++
		if p.Active && p.LowStock() {
			m.LowStockCount++
		}
		counts[p.ID] = p.Name
	}
	r.products.mu.Unlock()

	r.movements.mu.Lock()
	perProduct := map[int]int{}
	for _, mv := range r.movements.movements {
		m.TotalMovements++
		perProduct[mv.ProductID]++
	}
	r.movements.mu.Unlock()

	for id, n := range perProduct {
		if n > m.MostMovedProduct.MovementCount {
			m.MostMovedProduct = MostMovedProduct{Name: counts[id], MovementCount: n}
		}
	}
	return m, nil
}
