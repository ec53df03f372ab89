package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shoplite/shoplite/internal/model"
	"github.com/shoplite/shoplite/internal/store"
)

type CartRepository interface {
	AddItem(ctx context.Context, customerID, productID int64, quantity int) error
	Lines(ctx context.Context, customerID int64) ([]model.CartLine, error)
	Clear(ctx context.Context, customerID int64) error
}

type sqliteCartRepo struct{ db *sql.DB }

func NewCartRepository(db *sql.DB) CartRepository {
	return &sqliteCartRepo{db: db}
}

// AddItem inserts a cart entry or, when one already exists for this
// (customer, product) pair, accumulates the quantity. The UNIQUE constraint
// on cart keeps the pair single-rowed no matter how the call interleaves.
func (r *sqliteCartRepo) AddItem(ctx context.Context, customerID, productID int64, quantity int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cart (customer_id, product_id, quantity, added_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (customer_id, product_id) DO UPDATE SET quantity = quantity + excluded.quantity`,
		customerID, productID, quantity, store.FormatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

// Lines joins each cart entry with the product's current name and price;
// subtotals reflect the live price, not a snapshot.
func (r *sqliteCartRepo) Lines(ctx context.Context, customerID int64) ([]model.CartLine, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ct.cart_id, ct.customer_id, ct.product_id, p.product_name, p.price, ct.quantity, ct.added_at
		 FROM cart ct
		 JOIN products p ON ct.product_id = p.product_id
		 WHERE ct.customer_id = ?
		 ORDER BY ct.added_at, ct.cart_id`,
		customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("get cart lines: %w", err)
	}
	defer rows.Close()

	var lines []model.CartLine
	for rows.Next() {
		var line model.CartLine
		var addedAt string
		if err := rows.Scan(&line.ID, &line.CustomerID, &line.ProductID, &line.ProductName, &line.UnitPrice, &line.Quantity, &addedAt); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		if line.AddedAt, err = store.ParseTime(addedAt); err != nil {
			return nil, err
		}
		line.Subtotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *sqliteCartRepo) Clear(ctx context.Context, customerID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart WHERE customer_id = ?`, customerID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
