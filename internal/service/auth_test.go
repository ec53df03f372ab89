package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shoplite/shoplite/internal/dto"
	"github.com/shoplite/shoplite/internal/model"
)

type mockCustomerRepo struct {
	byEmail map[string]*model.Customer
	byID    map[int64]*model.Customer
	nextID  int64
}

func newMockCustomerRepo() *mockCustomerRepo {
	return &mockCustomerRepo{byEmail: make(map[string]*model.Customer), byID: make(map[int64]*model.Customer)}
}

func (m *mockCustomerRepo) Create(_ context.Context, customer *model.Customer) error {
	m.nextID++
	customer.ID = m.nextID
	customer.CreatedAt = time.Now()
	m.byEmail[customer.Email] = customer
	m.byID[customer.ID] = customer
	return nil
}

func (m *mockCustomerRepo) GetByID(_ context.Context, id int64) (*model.Customer, error) {
	return m.byID[id], nil
}

func (m *mockCustomerRepo) GetByEmail(_ context.Context, email string) (*model.Customer, error) {
	return m.byEmail[email], nil
}

func TestAuthService_Register(t *testing.T) {
	repo := newMockCustomerRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "test@example.com", Password: "password123",
		FirstName: "John", LastName: "Doe",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "test@example.com", resp.Customer.Email)
	assert.Equal(t, "customer", resp.Customer.Role)

	// The stored hash is not the plaintext and verifies against it.
	stored := repo.byEmail["test@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newMockCustomerRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	repo.byEmail["test@example.com"] = &model.Customer{Email: "test@example.com"}

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "test@example.com", Password: "password123",
		FirstName: "John", LastName: "Doe",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	repo := newMockCustomerRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	repo.byEmail["test@example.com"] = &model.Customer{
		ID: 1, Email: "test@example.com", PasswordHash: string(hashed), Role: "customer",
	}

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "test@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(1), resp.Customer.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newMockCustomerRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	repo.byEmail["test@example.com"] = &model.Customer{
		ID: 1, Email: "test@example.com", PasswordHash: string(hashed),
	}

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "test@example.com", Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newMockCustomerRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "nobody@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
