package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplite/shoplite/internal/store"
)

func newGatewayDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestValidateReadOnly(t *testing.T) {
	accepted := []string{
		"SELECT * FROM products",
		"  select * from products  ",
		"select count(*) from orders;",
		"SeLeCt 1",
	}
	for _, q := range accepted {
		_, err := ValidateReadOnly(q)
		assert.NoError(t, err, "query %q", q)
	}

	rejected := []string{
		"",
		"   ",
		";",
		"DROP TABLE products",
		"DELETE FROM products",
		"UPDATE products SET price = 0",
		"INSERT INTO products DEFAULT VALUES",
		"PRAGMA journal_mode",
		"SELECT 1; DROP TABLE products",
		"SELECT 1; SELECT 2",
	}
	for _, q := range rejected {
		_, err := ValidateReadOnly(q)
		assert.ErrorIs(t, err, ErrQueryNotReadOnly, "query %q", q)
	}
}

func TestQueryGateway_Execute(t *testing.T) {
	db := newGatewayDB(t)
	gateway := NewQueryGateway(db, time.Second)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO categories (category_name, description, created_at) VALUES ('Books', 'printed matter', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	result, err := gateway.Execute(ctx, "select category_name, description from categories")
	require.NoError(t, err)
	assert.Equal(t, []string{"category_name", "description"}, result.Columns)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, []string{"Books", "printed matter"}, result.Rows[0])
}

func TestQueryGateway_Execute_RejectsWrites(t *testing.T) {
	db := newGatewayDB(t)
	gateway := NewQueryGateway(db, time.Second)
	ctx := context.Background()

	_, err := gateway.Execute(ctx, "DROP TABLE products")
	assert.ErrorIs(t, err, ErrQueryNotReadOnly)

	_, err = gateway.Execute(ctx, "SELECT 1; DROP TABLE products")
	assert.ErrorIs(t, err, ErrQueryNotReadOnly)

	// The table survives untouched.
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&n))
}

func TestQueryGateway_Tables(t *testing.T) {
	db := newGatewayDB(t)
	gateway := NewQueryGateway(db, time.Second)

	tables, err := gateway.Tables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cart", "categories", "customers", "order_items", "orders", "products", "reviews"}, tables)
}

func TestQueryGateway_DumpTable(t *testing.T) {
	db := newGatewayDB(t)
	gateway := NewQueryGateway(db, time.Second)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO categories (category_name, created_at) VALUES ('Books', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	result, err := gateway.DumpTable(ctx, "categories")
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Contains(t, result.Columns, "category_name")
}

func TestQueryGateway_DumpTable_Unknown(t *testing.T) {
	db := newGatewayDB(t)
	gateway := NewQueryGateway(db, time.Second)

	_, err := gateway.DumpTable(context.Background(), "sqlite_master")
	assert.ErrorIs(t, err, ErrUnknownTable)

	_, err = gateway.DumpTable(context.Background(), "products; DROP TABLE products")
	assert.ErrorIs(t, err, ErrUnknownTable)
}
