package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shoplite/shoplite/internal/model"
	"github.com/shoplite/shoplite/internal/store"
)

// ErrInsufficientStock aborts order placement when a guarded stock decrement
// would drive a product's stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

type OrderRepository interface {
	// Place atomically writes the order, its items, and the stock
	// decrements. Either everything commits or nothing does.
	Place(ctx context.Context, order *model.Order) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	// List returns a customer's orders, or all orders when customerID is 0,
	// newest first, joined with customer identity fields.
	List(ctx context.Context, customerID int64) ([]model.Order, error)
}

type sqliteOrderRepo struct{ db *sql.DB }

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &sqliteOrderRepo{db: db}
}

func (r *sqliteOrderRepo) Place(ctx context.Context, order *model.Order) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	order.OrderDate = time.Now()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (customer_id, order_date, total_amount, status, shipping_address, payment_method)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		order.CustomerID, store.FormatTime(order.OrderDate), order.TotalAmount,
		string(order.Status), order.ShippingAddress, order.PaymentMethod,
	)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert order: last insert id: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = orderID

		itemRes, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal)
			 VALUES (?, ?, ?, ?, ?)`,
			item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
		)
		if err != nil {
			return 0, fmt.Errorf("insert order item: %w", err)
		}
		if item.ID, err = itemRes.LastInsertId(); err != nil {
			return 0, fmt.Errorf("insert order item: last insert id: %w", err)
		}

		// Guarded decrement: the WHERE clause refuses to go below zero, so
		// concurrent checkouts of the same product cannot oversell.
		ct, err := tx.ExecContext(ctx,
			`UPDATE products SET stock_quantity = stock_quantity - ?, updated_at = ?
			 WHERE product_id = ? AND stock_quantity >= ?`,
			item.Quantity, store.FormatTime(time.Now()), item.ProductID, item.Quantity,
		)
		if err != nil {
			return 0, fmt.Errorf("decrement stock: %w", err)
		}
		affected, err := ct.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("decrement stock: rows affected: %w", err)
		}
		if affected == 0 {
			return 0, fmt.Errorf("product %d: %w", item.ProductID, ErrInsufficientStock)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit order: %w", err)
	}
	order.ID = orderID
	return orderID, nil
}

func (r *sqliteOrderRepo) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	order := &model.Order{}
	var orderDate, status string
	err := r.db.QueryRowContext(ctx,
		`SELECT o.order_id, o.customer_id, c.first_name || ' ' || c.last_name, c.email,
		        o.order_date, o.total_amount, o.status, o.shipping_address, o.payment_method
		 FROM orders o
		 JOIN customers c ON o.customer_id = c.customer_id
		 WHERE o.order_id = ?`, id,
	).Scan(
		&order.ID, &order.CustomerID, &order.CustomerName, &order.CustomerEmail,
		&orderDate, &order.TotalAmount, &status, &order.ShippingAddress, &order.PaymentMethod,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	order.Status = model.OrderStatus(status)
	if order.OrderDate, err = store.ParseTime(orderDate); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT oi.order_item_id, oi.product_id, p.product_name, oi.quantity, oi.unit_price, oi.subtotal
		 FROM order_items oi
		 JOIN products p ON oi.product_id = p.product_id
		 WHERE oi.order_id = ?
		 ORDER BY oi.order_item_id`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		item.OrderID = order.ID
		order.Items = append(order.Items, item)
	}
	return order, rows.Err()
}

func (r *sqliteOrderRepo) List(ctx context.Context, customerID int64) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT o.order_id, o.customer_id, c.first_name || ' ' || c.last_name, c.email,
		        o.order_date, o.total_amount, o.status, o.shipping_address, o.payment_method
		 FROM orders o
		 JOIN customers c ON o.customer_id = c.customer_id
		 WHERE (? = 0 OR o.customer_id = ?)
		 ORDER BY o.order_date DESC, o.order_id DESC`,
		customerID, customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		var orderDate, status string
		if err := rows.Scan(
			&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerEmail,
			&orderDate, &o.TotalAmount, &status, &o.ShippingAddress, &o.PaymentMethod,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Status = model.OrderStatus(status)
		if o.OrderDate, err = store.ParseTime(orderDate); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
