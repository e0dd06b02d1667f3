package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bloomnext/pos-inventory/internal/models"
)

type PostgresStockRepository struct {
	db *sql.DB
}

func NewPostgresStockRepository(db *sql.DB) *PostgresStockRepository {
	return &PostgresStockRepository{db: db}
}

func (r *PostgresStockRepository) Adjust(ctx context.Context, productID, delta int, note string) (models.Product, error) {
	return r.mutate(ctx, productID, models.MovementAdjust, func(current int) (int, error) {
		newQty := current + delta
		if newQty < 0 {
			return 0, ErrStockBelowZero
		}
		return newQty, nil
	}, note)
}

func (r *PostgresStockRepository) Receive(ctx context.Context, productID, delta int, note string) (models.Product, error) {
	if delta <= 0 {
		return models.Product{}, ErrNonPositiveReceive
	}
	return r.mutate(ctx, productID, models.MovementReceive, func(current int) (int, error) {
		return current + delta, nil
	}, note)
}

func (r *PostgresStockRepository) Set(ctx context.Context, productID, newQty int, note string) (models.Product, error) {
	if newQty < 0 {
		return models.Product{}, ErrStockBelowZero
	}
	return r.mutate(ctx, productID, models.MovementSet, func(int) (int, error) {
		return newQty, nil
	}, note)
}

// mutate runs one guarded stock transition: lock the product row, compute
// the new quantity, write it, append the ledger entry, commit. The row lock
// serializes concurrent mutations per product.
func (r *PostgresStockRepository) mutate(ctx context.Context, productID int, movementType string, transition func(current int) (int, error), note string) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to begin stock transaction: %w", err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRowContext(ctx, `SELECT stock_qty FROM products WHERE id = $1 FOR UPDATE`, productID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to lock product row: %w", err)
	}

	newQty, err := transition(current)
	if err != nil {
		return models.Product{}, err
	}

	now := time.Now().UTC()
	p, err := scanProduct(tx.QueryRowContext(ctx,
		`UPDATE products SET stock_qty = $1, updated_at = $2 WHERE id = $3 RETURNING `+productColumns,
		newQty, now, productID))
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to update stock: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO inventory_movements (product_id, type, delta_qty, resulting_qty, note, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		productID, movementType, newQty-current, newQty, nullable(note), now)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to append movement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Product{}, fmt.Errorf("failed to commit stock transaction: %w", err)
	}
	return p, nil
}
