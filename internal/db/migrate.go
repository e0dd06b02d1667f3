package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"
)

// migration is one named schema step. Steps run in order on every startup,
// so each statement must be idempotent (IF NOT EXISTS / ADD COLUMN IF NOT
// EXISTS only).
type migration struct {
	name string
	stmt string
}

var migrations = []migration{
	{
		name: "create_products",
		stmt: `CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			barcode TEXT UNIQUE,
			sku TEXT,
			category TEXT,
			unit TEXT NOT NULL DEFAULT 'each',
			price_cents INTEGER NOT NULL DEFAULT 0,
			cost_cents INTEGER NOT NULL DEFAULT 0,
			taxable BOOLEAN NOT NULL DEFAULT TRUE,
			stock_qty INTEGER NOT NULL DEFAULT 0,
			reorder_level INTEGER NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
	},
	{
		name: "create_inventory_movements",
		stmt: `CREATE TABLE IF NOT EXISTS inventory_movements (
			id SERIAL PRIMARY KEY,
			product_id INTEGER NOT NULL REFERENCES products(id),
			type TEXT NOT NULL,
			delta_qty INTEGER NOT NULL,
			resulting_qty INTEGER NOT NULL,
			note TEXT,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	},
	{
		name: "create_users",
		stmt: `CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
	},
	{
		// columns added after the first release; kept additive so older
		// databases upgrade in place
		name: "products_add_catalog_columns",
		stmt: `ALTER TABLE products
			ADD COLUMN IF NOT EXISTS sku TEXT,
			ADD COLUMN IF NOT EXISTS category TEXT,
			ADD COLUMN IF NOT EXISTS cost_cents INTEGER NOT NULL DEFAULT 0,
			ADD COLUMN IF NOT EXISTS reorder_level INTEGER NOT NULL DEFAULT 0`,
	},
	{
		name: "index_movements_by_product",
		stmt: `CREATE INDEX IF NOT EXISTS idx_inventory_movements_product_id
			ON inventory_movements (product_id, id DESC)`,
	},
	{
		name: "index_products_category",
		stmt: `CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
	},
}

// Migrate applies all schema steps in order.
func Migrate(db *sql.DB) error {
	for _, m := range migrations {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		_, err := db.ExecContext(ctx, m.stmt)
		cancel()
		if err != nil {
			return fmt.Errorf("migration %s: %w", m.name, err)
		}
		log.Printf("migration applied: %s", m.name)
	}
	return nil
}
