package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) GetDashboardMetrics(ctx context.Context) (Metrics, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var m Metrics
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&m.TotalProducts); err != nil {
		return Metrics{}, fmt.Errorf("failed to count products: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory_movements`).Scan(&m.TotalMovements); err != nil {
		return Metrics{}, fmt.Errorf("failed to count movements: %w", err)
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE active = TRUE AND stock_qty <= reorder_level`,
	).Scan(&m.LowStockCount); err != nil {
		return Metrics{}, fmt.Errorf("failed to count low stock: %w", err)
	}

	err := r.db.QueryRowContext(ctx, `
		SELECT p.name, COUNT(*) AS cnt
		FROM inventory_movements im
		JOIN products p ON im.product_id = p.id
		GROUP BY p.name
		ORDER BY cnt DESC
		LIMIT 1
	`).Scan(&m.MostMovedProduct.Name, &m.MostMovedProduct.MovementCount)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Metrics{}, fmt.Errorf("failed to query most moved product: %w", err)
	}
	return m, nil
}
