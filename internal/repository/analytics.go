package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shoplite/shoplite/internal/model"
)

// AnalyticsRepository runs the fixed reporting aggregates. Every call
// recomputes from the live store; nothing is cached.
type AnalyticsRepository interface {
	DailySales(ctx context.Context) ([]model.DailySales, error)
	TopProducts(ctx context.Context) ([]model.TopProduct, error)
	CategorySales(ctx context.Context) ([]model.CategorySales, error)
}

type sqliteAnalyticsRepo struct{ db *sql.DB }

func NewAnalyticsRepository(db *sql.DB) AnalyticsRepository {
	return &sqliteAnalyticsRepo{db: db}
}

// DailySales groups orders by calendar date over the trailing 30 days.
func (r *sqliteAnalyticsRepo) DailySales(ctx context.Context) ([]model.DailySales, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DATE(order_date) AS date, COUNT(*) AS orders, SUM(total_amount) AS revenue
		 FROM orders
		 WHERE order_date >= DATE('now', '-30 days')
		 GROUP BY DATE(order_date)
		 ORDER BY date`,
	)
	if err != nil {
		return nil, fmt.Errorf("daily sales: %w", err)
	}
	defer rows.Close()

	var sales []model.DailySales
	for rows.Next() {
		var d model.DailySales
		if err := rows.Scan(&d.Date, &d.Orders, &d.Revenue); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		sales = append(sales, d)
	}
	return sales, rows.Err()
}

// TopProducts ranks products by total quantity sold, top 10. Ties resolve
// by product id, i.e. insertion order.
func (r *sqliteAnalyticsRepo) TopProducts(ctx context.Context) ([]model.TopProduct, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.product_id, p.product_name, SUM(oi.quantity) AS total_sold, SUM(oi.subtotal) AS revenue
		 FROM order_items oi
		 JOIN products p ON oi.product_id = p.product_id
		 GROUP BY p.product_id
		 ORDER BY total_sold DESC, p.product_id
		 LIMIT 10`,
	)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var top []model.TopProduct
	for rows.Next() {
		var t model.TopProduct
		if err := rows.Scan(&t.ProductID, &t.ProductName, &t.TotalSold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		top = append(top, t)
	}
	return top, rows.Err()
}

// CategorySales groups order items by the product's category, counting
// distinct orders per category, ordered by revenue descending.
func (r *sqliteAnalyticsRepo) CategorySales(ctx context.Context) ([]model.CategorySales, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.category_name, COUNT(DISTINCT oi.order_id) AS orders, SUM(oi.subtotal) AS revenue
		 FROM order_items oi
		 JOIN products p ON oi.product_id = p.product_id
		 JOIN categories c ON p.category_id = c.category_id
		 GROUP BY c.category_id
		 ORDER BY revenue DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("category sales: %w", err)
	}
	defer rows.Close()

	var sales []model.CategorySales
	for rows.Next() {
		var s model.CategorySales
		if err := rows.Scan(&s.CategoryName, &s.Orders, &s.Revenue); err != nil {
			return nil, fmt.Errorf("scan category sales: %w", err)
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
