package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bloomnext/pos-inventory/internal/models"
)

type PostgresMovementRepository struct {
	db *sql.DB
}

func NewPostgresMovementRepository(db *sql.DB) *PostgresMovementRepository {
	return &PostgresMovementRepository{db: db}
}

func (r *PostgresMovementRepository) GetByProductID(ctx context.Context, productID, limit int) ([]models.Movement, error) {
	query := `SELECT id, product_id, type, delta_qty, resulting_qty, note, created_at
		FROM inventory_movements
		WHERE product_id = $1
		ORDER BY id DESC
		LIMIT $2`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, productID, ClampHistoryLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query movements: %w", err)
	}
	defer rows.Close()

	var movements []models.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

func scanMovement(row rowScanner) (models.Movement, error) {
	var m models.Movement
	var note sql.NullString
	err := row.Scan(&m.ID, &m.ProductID, &m.Type, &m.DeltaQty, &m.ResultingQty, &note, &m.CreatedAt)
	if err != nil {
		return models.Movement{}, err
	}
	m.Note = note.String
	return m, nil
}
