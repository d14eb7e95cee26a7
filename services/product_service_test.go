package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"ua-shop/models"
	"ua-shop/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCatalogRepo keeps authoritative rows and, separately, stale snapshots
// served by GetProductByID, mirroring a cache that has not caught up yet.
type mockCatalogRepo struct {
	mu        sync.Mutex
	rows      map[int]models.Product
	stale     map[int]models.Product
	byIDReads int
}

func newMockCatalogRepo(products ...models.Product) *mockCatalogRepo {
	m := &mockCatalogRepo{
		rows:  make(map[int]models.Product),
		stale: make(map[int]models.Product),
	}
	for _, p := range products {
		m.rows[p.ID] = p
	}
	return m
}

func (m *mockCatalogRepo) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byIDReads++
	if p, ok := m.stale[id]; ok {
		return &p, nil
	}
	p, ok := m.rows[id]
	if !ok {
		return nil, repositories.ErrProductNotFound
	}
	return &p, nil
}

func (m *mockCatalogRepo) GetActiveProducts(ctx context.Context, page, limit int) ([]models.Product, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Product
	for _, p := range m.rows {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (m *mockCatalogRepo) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Product
	for _, p := range m.rows {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockCatalogRepo) SearchProductsByName(ctx context.Context, name string) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	query := strings.ToLower(name)
	out := []models.Product{}
	for _, p := range m.rows {
		if strings.Contains(strings.ToLower(p.Name), query) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockCatalogRepo) SearchProductsByPrice(ctx context.Context, minPrice, maxPrice int) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for _, p := range m.rows {
		if p.Price >= minPrice && p.Price <= maxPrice {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockCatalogRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product.ID = len(m.rows) + 1
	product.IsActive = true
	m.rows[product.ID] = *product
	return nil
}

func (m *mockCatalogRepo) UpdateProduct(ctx context.Context, id int, req models.UpdateProductRequest) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, repositories.ErrProductNotFound
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Price > 0 {
		p.Price = req.Price
	}
	m.rows[id] = p
	return &p, nil
}

func (m *mockCatalogRepo) SetActive(ctx context.Context, id int, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return repositories.ErrProductNotFound
	}
	p.IsActive = active
	m.rows[id] = p
	return nil
}

func (m *mockCatalogRepo) reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byIDReads
}

func TestUpdateProductIgnoresStaleCachedRead(t *testing.T) {
	repo := newMockCatalogRepo(models.Product{
		ID: 1, Name: "Mug", Description: "Ceramic mug", Price: 100, IsActive: true,
	})
	// The by-id read path serves an outdated snapshot. A partial update must
	// not merge onto it and write the old name or price back.
	repo.stale[1] = models.Product{
		ID: 1, Name: "Old Mug", Description: "Outdated copy", Price: 80, IsActive: true,
	}
	svc := NewProductService(repo)

	updated, err := svc.UpdateProduct(context.Background(), 1, models.UpdateProductRequest{Price: 150})
	require.NoError(t, err)
	assert.Equal(t, "Mug", updated.Name)
	assert.Equal(t, "Ceramic mug", updated.Description)
	assert.Equal(t, 150, updated.Price)
	assert.Zero(t, repo.reads(), "partial update must not go through the by-id read path")

	assert.Equal(t, models.Product{
		ID: 1, Name: "Mug", Description: "Ceramic mug", Price: 150, IsActive: true,
	}, repo.rows[1])
}

func TestUpdateProductNotFound(t *testing.T) {
	svc := NewProductService(newMockCatalogRepo())

	_, err := svc.UpdateProduct(context.Background(), 42, models.UpdateProductRequest{Name: "Ghost"})
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestSearchByName(t *testing.T) {
	svc := NewProductService(newMockCatalogRepo(
		models.Product{ID: 1, Name: "Coffee Mug", Price: 100, IsActive: true},
		models.Product{ID: 2, Name: "Travel MUG", Price: 250, IsActive: true},
		models.Product{ID: 3, Name: "T-Shirt", Price: 300, IsActive: true},
	))

	results, err := svc.SearchByName(context.Background(), "mug")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = svc.SearchByName(context.Background(), "keyboard")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchByPrice(t *testing.T) {
	svc := NewProductService(newMockCatalogRepo(
		models.Product{ID: 1, Name: "Sticker", Price: 15, IsActive: true},
		models.Product{ID: 2, Name: "Mug", Price: 100, IsActive: true},
		models.Product{ID: 3, Name: "Jacket", Price: 900, IsActive: true},
	))
	ctx := context.Background()

	results, err := svc.SearchByPrice(ctx, 50, 500)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Mug", results[0].Name)

	// A zero maximum means unbounded, and a negative minimum is clamped.
	results, err = svc.SearchByPrice(ctx, -10, 0)
	require.NoError(t, err)
	assert.Len(t, results, 3)

	// Bounds are inclusive.
	results, err = svc.SearchByPrice(ctx, 15, 15)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Sticker", results[0].Name)
}
