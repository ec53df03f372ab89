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

// Product listing sort keys. Anything else falls back to SortByName.
const (
	SortByName      = "name"
	SortByPriceAsc  = "price_asc"
	SortByPriceDesc = "price_desc"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, search string, categoryID int64, sort string) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Count(ctx context.Context) (int, error)
}

type sqliteProductRepo struct{ db *sql.DB }

func NewProductRepository(db *sql.DB) ProductRepository {
	return &sqliteProductRepo{db: db}
}

func (r *sqliteProductRepo) Create(ctx context.Context, product *model.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO products (product_name, category_id, price, stock_quantity, description, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		product.Name, product.CategoryID, product.Price, product.StockQuantity,
		product.Description, product.ImageURL, store.FormatTime(now), store.FormatTime(now),
	)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	product.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create product: last insert id: %w", err)
	}
	return nil
}

const productColumns = `p.product_id, p.product_name, COALESCE(p.category_id, 0), COALESCE(c.category_name, ''),
	p.price, p.stock_quantity, p.description, p.image_url, p.created_at, p.updated_at`

func (r *sqliteProductRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+`
		 FROM products p
		 LEFT JOIN categories c ON p.category_id = c.category_id
		 WHERE p.product_id = ?`, id,
	)
	p, err := scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List returns the full filtered product set; there is no pagination, the
// catalog is a single-store one. Search is a case-insensitive substring
// match on the product name, categoryID of 0 means all categories.
func (r *sqliteProductRepo) List(ctx context.Context, search string, categoryID int64, sort string) ([]model.Product, error) {
	orderBy := map[string]string{
		SortByName:      "p.product_name ASC",
		SortByPriceAsc:  "p.price ASC",
		SortByPriceDesc: "p.price DESC",
	}[sort]
	if orderBy == "" {
		orderBy = "p.product_name ASC"
	}

	query := `SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.category_id
		WHERE (? = '' OR LOWER(p.product_name) LIKE '%' || LOWER(?) || '%')
		  AND (? = 0 OR p.category_id = ?)
		ORDER BY ` + orderBy

	rows, err := r.db.QueryContext(ctx, query, search, search, categoryID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *sqliteProductRepo) Update(ctx context.Context, product *model.Product) error {
	product.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET product_name = ?, category_id = ?, price = ?, stock_quantity = ?, description = ?, image_url = ?, updated_at = ?
		 WHERE product_id = ?`,
		product.Name, product.CategoryID, product.Price, product.StockQuantity,
		product.Description, product.ImageURL, store.FormatTime(product.UpdatedAt), product.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *sqliteProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func scanProduct(scan func(dest ...any) error) (*model.Product, error) {
	p := &model.Product{}
	var createdAt, updatedAt string
	err := scan(
		&p.ID, &p.Name, &p.CategoryID, &p.CategoryName,
		&p.Price, &p.StockQuantity, &p.Description, &p.ImageURL,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.CreatedAt, err = store.ParseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = store.ParseTime(updatedAt); err != nil {
		return nil, err
	}
	return p, nil
}
