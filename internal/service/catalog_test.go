package service

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplite/shoplite/internal/dto"
	"github.com/shoplite/shoplite/internal/model"
	"github.com/shoplite/shoplite/internal/repository"
)

type mockCategoryRepo struct {
	byID   map[int64]*model.Category
	byName map[string]*model.Category
	nextID int64
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{byID: make(map[int64]*model.Category), byName: make(map[string]*model.Category)}
}

func (m *mockCategoryRepo) Create(_ context.Context, category *model.Category) error {
	m.nextID++
	category.ID = m.nextID
	m.byID[category.ID] = category
	m.byName[category.Name] = category
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id int64) (*model.Category, error) {
	return m.byID[id], nil
}

func (m *mockCategoryRepo) GetByName(_ context.Context, name string) (*model.Category, error) {
	return m.byName[name], nil
}

func (m *mockCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCategoryRepo) Count(_ context.Context) (int, error) {
	return len(m.byID), nil
}

type mockProductRepo struct {
	byID   map[int64]*model.Product
	nextID int64
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{byID: make(map[int64]*model.Product)}
}

func (m *mockProductRepo) Create(_ context.Context, product *model.Product) error {
	m.nextID++
	product.ID = m.nextID
	m.byID[product.ID] = product
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id int64) (*model.Product, error) {
	return m.byID[id], nil
}

func (m *mockProductRepo) List(_ context.Context, search string, categoryID int64, _ string) ([]model.Product, error) {
	var out []model.Product
	for _, p := range m.byID {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			continue
		}
		if categoryID != 0 && p.CategoryID != categoryID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProductRepo) Update(_ context.Context, product *model.Product) error {
	m.byID[product.ID] = product
	return nil
}

func (m *mockProductRepo) Count(_ context.Context) (int, error) {
	return len(m.byID), nil
}

func newTestCatalog() (*CatalogService, *mockCategoryRepo, *mockProductRepo) {
	categories := newMockCategoryRepo()
	products := newMockProductRepo()
	return NewCatalogService(categories, products), categories, products
}

func TestCatalogService_AddCategory(t *testing.T) {
	svc, _, _ := newTestCatalog()

	resp, err := svc.AddCategory(context.Background(), dto.CreateCategoryRequest{Name: "  Books  ", Description: "printed matter"})
	require.NoError(t, err)
	assert.Equal(t, "Books", resp.Name)
	assert.NotZero(t, resp.ID)
}

func TestCatalogService_AddCategory_EmptyName(t *testing.T) {
	svc, _, _ := newTestCatalog()

	_, err := svc.AddCategory(context.Background(), dto.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrCategoryNameRequired)
}

func TestCatalogService_AddCategory_Duplicate(t *testing.T) {
	svc, categories, _ := newTestCatalog()
	categories.byName["Books"] = &model.Category{ID: 1, Name: "Books"}

	_, err := svc.AddCategory(context.Background(), dto.CreateCategoryRequest{Name: "Books"})
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestCatalogService_AddProduct(t *testing.T) {
	svc, categories, _ := newTestCatalog()
	cat := &model.Category{Name: "Books"}
	require.NoError(t, categories.Create(context.Background(), cat))

	resp, err := svc.AddProduct(context.Background(), dto.CreateProductRequest{
		Name:       "Cookbook",
		CategoryID: cat.ID,
		Price:      decimal.RequireFromString("25.00"),
		Stock:      10,
	})
	require.NoError(t, err)
	assert.Equal(t, "Cookbook", resp.Name)
	assert.Equal(t, "Books", resp.CategoryName)
	assert.Equal(t, 10, resp.Stock)
}

func TestCatalogService_AddProduct_InvalidPrice(t *testing.T) {
	svc, _, _ := newTestCatalog()

	_, err := svc.AddProduct(context.Background(), dto.CreateProductRequest{
		Name: "Cookbook", CategoryID: 1, Price: decimal.Zero,
	})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.AddProduct(context.Background(), dto.CreateProductRequest{
		Name: "Cookbook", CategoryID: 1, Price: decimal.RequireFromString("-1"),
	})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestCatalogService_AddProduct_UnknownCategory(t *testing.T) {
	svc, _, _ := newTestCatalog()

	_, err := svc.AddProduct(context.Background(), dto.CreateProductRequest{
		Name: "Cookbook", CategoryID: 42, Price: decimal.RequireFromString("25.00"),
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	svc, _, _ := newTestCatalog()

	_, err := svc.GetProduct(context.Background(), 42)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_ListProducts_Search(t *testing.T) {
	svc, categories, products := newTestCatalog()
	cat := &model.Category{Name: "Hardware"}
	require.NoError(t, categories.Create(context.Background(), cat))
	require.NoError(t, products.Create(context.Background(), &model.Product{Name: "widget-9000", CategoryID: cat.ID}))
	require.NoError(t, products.Create(context.Background(), &model.Product{Name: "Anvil", CategoryID: cat.ID}))

	resp, err := svc.ListProducts(context.Background(), dto.ListProductsRequest{Search: "WIDGET", Sort: repository.SortByName})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "widget-9000", resp.Products[0].Name)
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	svc, categories, products := newTestCatalog()
	cat := &model.Category{Name: "Hardware"}
	require.NoError(t, categories.Create(context.Background(), cat))
	p := &model.Product{Name: "Anvil", CategoryID: cat.ID, Price: decimal.RequireFromString("120.00"), StockQuantity: 3}
	require.NoError(t, products.Create(context.Background(), p))

	newPrice := decimal.RequireFromString("99.95")
	newStock := 7
	resp, err := svc.UpdateProduct(context.Background(), p.ID, dto.UpdateProductRequest{Price: &newPrice, Stock: &newStock})
	require.NoError(t, err)
	assert.True(t, resp.Price.Equal(newPrice))
	assert.Equal(t, 7, resp.Stock)
	assert.Equal(t, "Anvil", resp.Name)
}

func TestCatalogService_UpdateProduct_NegativeStock(t *testing.T) {
	svc, _, products := newTestCatalog()
	p := &model.Product{Name: "Anvil", Price: decimal.RequireFromString("120.00")}
	require.NoError(t, products.Create(context.Background(), p))

	bad := -1
	_, err := svc.UpdateProduct(context.Background(), p.ID, dto.UpdateProductRequest{Stock: &bad})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCatalogService_UpdateProduct_NotFound(t *testing.T) {
	svc, _, _ := newTestCatalog()

	name := "Anvil"
	_, err := svc.UpdateProduct(context.Background(), 42, dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_Counts(t *testing.T) {
	svc, categories, products := newTestCatalog()
	require.NoError(t, categories.Create(context.Background(), &model.Category{Name: "Books"}))
	require.NoError(t, products.Create(context.Background(), &model.Product{Name: "Cookbook"}))
	require.NoError(t, products.Create(context.Background(), &model.Product{Name: "Atlas"}))

	resp, err := svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Products)
	assert.Equal(t, 1, resp.Categories)
}
