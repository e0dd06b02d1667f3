package repo

import "context"

type MostMovedProduct struct {
	Name          string `json:"name"`
	MovementCount int    `json:"movement_count"`
}

// Metrics is the admin dashboard summary of the catalog and ledger.
type Metrics struct {
	TotalProducts    int              `json:"total_products"`
	TotalMovements   int              `json:"total_movements"`
	LowStockCount    int              `json:"low_stock_count"`
	MostMovedProduct MostMovedProduct `json:"most_moved_product"`
}

type MetricsRepository interface {
	GetDashboardMetrics(ctx context.Context) (Metrics, error)
}
