package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bloomnext/pos-inventory/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of
// ProductRepository, used by the handler test suites.
type InMemoryProductRepository struct {
	mu       sync.Mutex
	products map[int]models.Product
	nextID   int
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: map[int]models.Product{},
		nextID:   1,
	}
}

func (r *InMemoryProductRepository) Create(_ context.Context, p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.barcodeTaken(p.Barcode, 0) {
		return models.Product{}, ErrBarcodeConflict
	}
	p.ID = r.nextID
	r.nextID++
	r.products[p.ID] = p
	return p, nil
}

func (r *InMemoryProductRepository) GetByID(_ context.Context, id int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(id)
}

func (r *InMemoryProductRepository) Update(_ context.Context, p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.get(p.ID); err != nil {
		return models.Product{}, err
	}
	if r.barcodeTaken(p.Barcode, p.ID) {
		return models.Product{}, ErrBarcodeConflict
	}
	r.products[p.ID] = p
	return p, nil
}

func (r *InMemoryProductRepository) Deactivate(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.get(id)
	if err != nil {
		return err
	}
	p.Active = false
	p.UpdatedAt = time.Now().UTC()
	r.products[id] = p
	return nil
}

func (r *InMemoryProductRepository) Filter(_ context.Context, f ProductFilter) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Product
	for _, p := range r.products {
		if f.ActiveOnly && !p.Active {
			continue
		}
		if f.LowStockOnly && !p.LowStock() {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Query != "" && !matchesQuery(p, f.Query) {
			continue
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	if limit := f.ClampedLimit(); len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *InMemoryProductRepository) GetByBarcode(_ context.Context, barcode string) (models.Product, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.Active && p.Barcode != "" && p.Barcode == barcode {
			return p, true, nil
		}
	}
	return models.Product{}, false, nil
}

// Clear removes all products; test cleanup helper.
func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = map[int]models.Product{}
	r.nextID = 1
}

func (r *InMemoryProductRepository) get(id int) (models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *InMemoryProductRepository) barcodeTaken(barcode string, selfID int) bool {
	if barcode == "" {
		return false
	}
	for _, p := range r.products {
		if p.ID != selfID && p.Barcode == barcode {
			return true
		}
	}
	return false
}

// setStock is used by the in-memory stock repository while it holds its own
// mutation lock.
func (r *InMemoryProductRepository) setStock(id, qty int, now time.Time) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.get(id)
	if err != nil {
		return models.Product{}, err
	}
	p.StockQty = qty
	p.UpdatedAt = now
	r.products[id] = p
	return p, nil
}

func matchesQuery(p models.Product, q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.SKU), q) ||
		strings.Contains(strings.ToLower(p.Barcode), q)
}
