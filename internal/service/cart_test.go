package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplite/shoplite/internal/dto"
	"github.com/shoplite/shoplite/internal/model"
)

// mockCartRepo keeps cart lines in insertion order and accumulates quantity
// on repeated adds, mirroring the store's upsert.
type mockCartRepo struct {
	lines   map[int64][]model.CartLine
	cleared []int64
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{lines: make(map[int64][]model.CartLine)}
}

func (m *mockCartRepo) AddItem(_ context.Context, customerID, productID int64, quantity int) error {
	for i := range m.lines[customerID] {
		if m.lines[customerID][i].ProductID == productID {
			m.lines[customerID][i].Quantity += quantity
			return nil
		}
	}
	m.lines[customerID] = append(m.lines[customerID], model.CartLine{
		CustomerID: customerID, ProductID: productID, Quantity: quantity,
	})
	return nil
}

func (m *mockCartRepo) Lines(_ context.Context, customerID int64) ([]model.CartLine, error) {
	return m.lines[customerID], nil
}

func (m *mockCartRepo) Clear(_ context.Context, customerID int64) error {
	delete(m.lines, customerID)
	m.cleared = append(m.cleared, customerID)
	return nil
}

func TestCartService_AddItem(t *testing.T) {
	carts := newMockCartRepo()
	products := newMockProductRepo()
	svc := NewCartService(carts, products)

	p := &model.Product{Name: "Bolt", Price: decimal.RequireFromString("0.50")}
	require.NoError(t, products.Create(context.Background(), p))

	require.NoError(t, svc.AddItem(context.Background(), 1, dto.AddCartItemRequest{ProductID: p.ID, Quantity: 2}))
	require.NoError(t, svc.AddItem(context.Background(), 1, dto.AddCartItemRequest{ProductID: p.ID, Quantity: 2}))

	require.Len(t, carts.lines[1], 1)
	assert.Equal(t, 4, carts.lines[1][0].Quantity)
}

func TestCartService_AddItem_InvalidQuantity(t *testing.T) {
	svc := NewCartService(newMockCartRepo(), newMockProductRepo())

	err := svc.AddItem(context.Background(), 1, dto.AddCartItemRequest{ProductID: 1, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	err = svc.AddItem(context.Background(), 1, dto.AddCartItemRequest{ProductID: 1, Quantity: -3})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	svc := NewCartService(newMockCartRepo(), newMockProductRepo())

	err := svc.AddItem(context.Background(), 1, dto.AddCartItemRequest{ProductID: 42, Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_GetCart(t *testing.T) {
	carts := newMockCartRepo()
	svc := NewCartService(carts, newMockProductRepo())

	carts.lines[1] = []model.CartLine{
		{ProductID: 1, ProductName: "Anvil", UnitPrice: decimal.RequireFromString("120.00"), Quantity: 1, Subtotal: decimal.RequireFromString("120.00")},
		{ProductID: 2, ProductName: "Bolt", UnitPrice: decimal.RequireFromString("0.50"), Quantity: 4, Subtotal: decimal.RequireFromString("2.00")},
	}

	resp, err := svc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Lines, 2)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("122.00")))
}

func TestCartService_GetCart_Empty(t *testing.T) {
	svc := NewCartService(newMockCartRepo(), newMockProductRepo())

	resp, err := svc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)
	assert.True(t, resp.Total.IsZero())
}

func TestCartService_Clear(t *testing.T) {
	carts := newMockCartRepo()
	svc := NewCartService(carts, newMockProductRepo())
	carts.lines[1] = []model.CartLine{{ProductID: 1, Quantity: 1}}

	require.NoError(t, svc.Clear(context.Background(), 1))
	assert.Empty(t, carts.lines[1])
}
