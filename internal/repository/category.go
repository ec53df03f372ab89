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

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetByName(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Count(ctx context.Context) (int, error)
}

type sqliteCategoryRepo struct{ db *sql.DB }

func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &sqliteCategoryRepo{db: db}
}

func (r *sqliteCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	category.CreatedAt = time.Now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (category_name, description, created_at) VALUES (?, ?, ?)`,
		category.Name, category.Description, store.FormatTime(category.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	category.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create category: last insert id: %w", err)
	}
	return nil
}

func (r *sqliteCategoryRepo) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	return r.get(ctx, `WHERE category_id = ?`, id)
}

func (r *sqliteCategoryRepo) GetByName(ctx context.Context, name string) (*model.Category, error) {
	return r.get(ctx, `WHERE category_name = ?`, name)
}

func (r *sqliteCategoryRepo) get(ctx context.Context, where string, arg any) (*model.Category, error) {
	c := &model.Category{}
	var createdAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT category_id, category_name, description, created_at FROM categories `+where, arg,
	).Scan(&c.ID, &c.Name, &c.Description, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	if c.CreatedAt, err = store.ParseTime(createdAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *sqliteCategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category_id, category_name, description, created_at FROM categories ORDER BY category_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &createdAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if c.CreatedAt, err = store.ParseTime(createdAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *sqliteCategoryRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}
