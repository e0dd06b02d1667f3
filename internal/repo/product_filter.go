package repo

// List limits for catalog queries.
const (
	DefaultListLimit = 200
	MaxListLimit     = 1000
)

// ProductFilter holds the combinable catalog listing filters. Zero values
// mean "no restriction"; any combination is valid.
type ProductFilter struct {
	ActiveOnly   bool
	LowStockOnly bool
	Category     string
	// Query is matched case-insensitively as a substring against
	// name, sku and barcode.
	Query string
	Limit int
}

// ClampedLimit returns the requested limit bounded to [1, MaxListLimit],
// falling back to DefaultListLimit when unset.
func (f ProductFilter) ClampedLimit() int {
	if f.Limit <= 0 {
		return DefaultListLimit
	}
	return min(f.Limit, MaxListLimit)
}
