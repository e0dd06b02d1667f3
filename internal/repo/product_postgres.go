package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bloomnext/pos-inventory/internal/models"
)

const queryTimeout = 3 * time.Second

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `id, name, barcode, sku, category, unit, price_cents, cost_cents,
	taxable, stock_qty, reorder_level, active, created_at, updated_at`

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	query := `INSERT INTO products
		(name, barcode, sku, category, unit, price_cents, cost_cents, taxable, stock_qty, reorder_level, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		p.Name, nullable(p.Barcode), nullable(p.SKU), nullable(p.Category), p.Unit,
		p.PriceCents, p.CostCents, p.Taxable, p.StockQty, p.ReorderLevel, p.Active,
		p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if isUniqueViolation(err) {
		return models.Product{}, ErrBarcodeConflict
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	query := `UPDATE products
		SET name = $1, barcode = $2, sku = $3, category = $4, unit = $5,
			price_cents = $6, cost_cents = $7, taxable = $8,
			stock_qty = $9, reorder_level = $10, active = $11, updated_at = $12
		WHERE id = $13`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query,
		p.Name, nullable(p.Barcode), nullable(p.SKU), nullable(p.Category), p.Unit,
		p.PriceCents, p.CostCents, p.Taxable, p.StockQty, p.ReorderLevel, p.Active,
		p.UpdatedAt, p.ID,
	)
	if isUniqueViolation(err) {
		return models.Product{}, ErrBarcodeConflict
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return r.GetByID(ctx, p.ID)
}

func (r *PostgresProductRepository) Deactivate(ctx context.Context, id int) error {
	query := `UPDATE products SET active = FALSE, updated_at = $1 WHERE id = $2`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) Filter(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	conditions, args, argIdx := filterConditions(f)

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	query += conditions
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d", argIdx)
	args = append(args, f.ClampedLimit())

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) GetByBarcode(ctx context.Context, barcode string) (models.Product, bool, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1 AND active = TRUE LIMIT 1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, barcode))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, false, nil
	}
	if err != nil {
		return models.Product{}, false, err
	}
	return p, true, nil
}

func filterConditions(f ProductFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if f.ActiveOnly {
		query += " AND active = TRUE"
	}
	if f.LowStockOnly {
		query += " AND stock_qty <= reorder_level"
	}
	if f.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, f.Category)
		argIdx++
	}
	if f.Query != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d OR barcode ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+f.Query+"%")
		argIdx++
	}

	return query, args, argIdx
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	var barcode, sku, category sql.NullString
	err := row.Scan(&p.ID, &p.Name, &barcode, &sku, &category, &p.Unit,
		&p.PriceCents, &p.CostCents, &p.Taxable, &p.StockQty, &p.ReorderLevel,
		&p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Product{}, err
	}
	p.Barcode = barcode.String
	p.SKU = sku.String
	p.Category = category.String
	return p, nil
}

// nullable maps an absent optional field to SQL NULL. NULL barcodes do not
// collide under the unique constraint, so many products may omit one.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
