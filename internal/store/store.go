// Package store opens the single-file SQLite database and keeps its schema
// current.
//
// WAL mode is enabled on Open so that readers never block the writer; the
// HTTP layer may serve catalog reads while a checkout transaction commits.
package store

import (
	"database/sql"
	"fmt"

	// Register the pure-Go SQLite driver. modernc.org/sqlite needs no CGO,
	// so the binary stays a single static artifact.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup. Idempotent via IF NOT EXISTS.
//
// Primary keys are surrogate auto-incrementing integers. Money columns use
// NUMERIC affinity; timestamps are RFC3339 UTC TEXT (SQLite has no native
// datetime type).
const schema = `
CREATE TABLE IF NOT EXISTS categories (
    category_id   INTEGER PRIMARY KEY AUTOINCREMENT,
    category_name TEXT    NOT NULL UNIQUE,
    description   TEXT    NOT NULL DEFAULT '',
    created_at    TEXT    NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
    product_id     INTEGER PRIMARY KEY AUTOINCREMENT,
    product_name   TEXT    NOT NULL,
    category_id    INTEGER REFERENCES categories(category_id),
    price          NUMERIC NOT NULL CHECK (price >= 0),
    stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
    description    TEXT    NOT NULL DEFAULT '',
    image_url      TEXT    NOT NULL DEFAULT '',
    created_at     TEXT    NOT NULL,
    updated_at     TEXT    NOT NULL
);

CREATE TABLE IF NOT EXISTS customers (
    customer_id   INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name    TEXT    NOT NULL,
    last_name     TEXT    NOT NULL,
    email         TEXT    NOT NULL UNIQUE,
    password_hash TEXT    NOT NULL,
    phone         TEXT    NOT NULL DEFAULT '',
    address       TEXT    NOT NULL DEFAULT '',
    city          TEXT    NOT NULL DEFAULT '',
    state         TEXT    NOT NULL DEFAULT '',
    zip_code      TEXT    NOT NULL DEFAULT '',
    country       TEXT    NOT NULL DEFAULT '',
    role          TEXT    NOT NULL DEFAULT 'customer',
    created_at    TEXT    NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
    order_id         INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_id      INTEGER NOT NULL REFERENCES customers(customer_id),
    order_date       TEXT    NOT NULL,
    total_amount     NUMERIC NOT NULL,
    status           TEXT    NOT NULL DEFAULT 'pending'
                     CHECK (status IN ('pending','processing','shipped','delivered','cancelled')),
    shipping_address TEXT    NOT NULL DEFAULT '',
    payment_method   TEXT    NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS order_items (
    order_item_id INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id      INTEGER NOT NULL REFERENCES orders(order_id),
    product_id    INTEGER NOT NULL REFERENCES products(product_id),
    quantity      INTEGER NOT NULL CHECK (quantity > 0),
    unit_price    NUMERIC NOT NULL,
    subtotal      NUMERIC NOT NULL
);

CREATE TABLE IF NOT EXISTS cart (
    cart_id     INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_id INTEGER NOT NULL REFERENCES customers(customer_id),
    product_id  INTEGER NOT NULL REFERENCES products(product_id),
    quantity    INTEGER NOT NULL CHECK (quantity > 0),
    added_at    TEXT    NOT NULL,
    UNIQUE (customer_id, product_id)
);

CREATE TABLE IF NOT EXISTS reviews (
    review_id   INTEGER PRIMARY KEY AUTOINCREMENT,
    product_id  INTEGER NOT NULL REFERENCES products(product_id),
    customer_id INTEGER NOT NULL REFERENCES customers(customer_id),
    rating      INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
    comment     TEXT    NOT NULL DEFAULT '',
    review_date TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_products_category    ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_orders_customer      ON orders(customer_id, order_date);
CREATE INDEX IF NOT EXISTS idx_order_items_order    ON order_items(order_id);
CREATE INDEX IF NOT EXISTS idx_order_items_product  ON order_items(product_id);
CREATE INDEX IF NOT EXISTS idx_cart_customer        ON cart(customer_id);
CREATE INDEX IF NOT EXISTS idx_reviews_product      ON reviews(product_id);
`

// Open opens (or creates) the SQLite database at the given path and applies
// the schema.
//
//	db, err := store.Open("shoplite.db")
func Open(path string) (*sql.DB, error) {
	// _pragma query parameters configure connection state for the modernc
	// driver. foreign_keys enforces the references declared above;
	// busy_timeout waits for locks instead of failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	// Driver name is "sqlite", not "sqlite3", for modernc.
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection; a one-connection
	// pool also serializes the multi-statement checkout transaction.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return db, nil
}
