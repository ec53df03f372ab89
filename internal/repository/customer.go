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

type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)
}

type sqliteCustomerRepo struct{ db *sql.DB }

func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &sqliteCustomerRepo{db: db}
}

func (r *sqliteCustomerRepo) Create(ctx context.Context, customer *model.Customer) error {
	customer.CreatedAt = time.Now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (first_name, last_name, email, password_hash, phone, address, city, state, zip_code, country, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		customer.FirstName, customer.LastName, customer.Email, customer.PasswordHash,
		customer.Phone, customer.Address, customer.City, customer.State,
		customer.ZipCode, customer.Country, customer.Role, store.FormatTime(customer.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	customer.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create customer: last insert id: %w", err)
	}
	return nil
}

func (r *sqliteCustomerRepo) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	return r.get(ctx, `WHERE customer_id = ?`, id)
}

func (r *sqliteCustomerRepo) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return r.get(ctx, `WHERE email = ?`, email)
}

func (r *sqliteCustomerRepo) get(ctx context.Context, where string, arg any) (*model.Customer, error) {
	query := `SELECT customer_id, first_name, last_name, email, password_hash, phone, address, city, state, zip_code, country, role, created_at
			  FROM customers ` + where
	c := &model.Customer{}
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PasswordHash,
		&c.Phone, &c.Address, &c.City, &c.State, &c.ZipCode, &c.Country,
		&c.Role, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if c.CreatedAt, err = store.ParseTime(createdAt); err != nil {
		return nil, err
	}
	return c, nil
}
