package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/shoplite/shoplite/internal/model"
	"github.com/shoplite/shoplite/internal/store"
)

// newTestDB opens a fresh store in a temp dir. The driver is embedded, so
// these tests run against the real thing with no external service.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedCustomer(t *testing.T, db *sql.DB, email string) *model.Customer {
	t.Helper()
	c := &model.Customer{
		FirstName: "Jane", LastName: "Doe", Email: email,
		PasswordHash: "x", Role: "customer",
	}
	require.NoError(t, NewCustomerRepository(db).Create(context.Background(), c))
	return c
}

func seedCategory(t *testing.T, db *sql.DB, name string) *model.Category {
	t.Helper()
	c := &model.Category{Name: name, Description: "test category"}
	require.NoError(t, NewCategoryRepository(db).Create(context.Background(), c))
	return c
}

func seedProduct(t *testing.T, db *sql.DB, categoryID int64, name, price string, stock int) *model.Product {
	t.Helper()
	p := &model.Product{
		Name:          name,
		CategoryID:    categoryID,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
	}
	require.NoError(t, NewProductRepository(db).Create(context.Background(), p))
	return p
}
