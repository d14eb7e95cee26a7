package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"ua-shop/config"
	"ua-shop/models"

	"github.com/jackc/pgx/v5"
)

const productCacheTTL = 30 * time.Second

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func productCacheKey(id int) string {
	return fmt.Sprintf("product:%d", id)
}

// GetProductByID reads through a short-lived cache. Cart additions snapshot
// the returned name and price, so the TTL is kept short and admin writes
// invalidate the entry.
func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	if config.RedisClient != nil {
		cached, err := config.RedisClient.Get(ctx, productCacheKey(id)).Result()
		if err == nil {
			var p models.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	var p models.Product
	err := config.DB.QueryRow(ctx,
		"SELECT id, name, description, price, is_active, created_at, updated_at FROM products WHERE id = $1",
		id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	if config.RedisClient != nil {
		if jsonData, err := json.Marshal(p); err == nil {
			config.RedisClient.Set(ctx, productCacheKey(id), string(jsonData), productCacheTTL)
		}
	}
	return &p, nil
}

func invalidateProductCache(ctx context.Context, id int) {
	if config.RedisClient != nil {
		config.RedisClient.Del(ctx, productCacheKey(id))
	}
}

// GetActiveProducts is the public catalog listing.
func (r *ProductRepository) GetActiveProducts(ctx context.Context, page, limit int) ([]models.Product, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := config.DB.QueryRow(ctx, "SELECT COUNT(*) FROM products WHERE is_active = true").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	rows, err := config.DB.Query(ctx,
		`SELECT id, name, description, price, is_active, created_at, updated_at
		 FROM products WHERE is_active = true ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetAllProducts is the admin listing, inactive products included.
func (r *ProductRepository) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := config.DB.Query(ctx,
		"SELECT id, name, description, price, is_active, created_at, updated_at FROM products ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	now := time.Now()
	err := config.DB.QueryRow(ctx,
		`INSERT INTO products (name, description, price, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, true, $4, $4) RETURNING id, is_active, created_at, updated_at`,
		product.Name, product.Description, product.Price, now,
	).Scan(&product.ID, &product.IsActive, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// SearchProductsByName matches products whose name contains the query,
// case-insensitively.
func (r *ProductRepository) SearchProductsByName(ctx context.Context, name string) ([]models.Product, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT id, name, description, price, is_active, created_at, updated_at
		 FROM products WHERE name ILIKE '%' || $1 || '%' ORDER BY created_at DESC`,
		name)
	if err != nil {
		return nil, fmt.Errorf("failed to search products by name: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// SearchProductsByPrice returns products priced within [minPrice, maxPrice].
func (r *ProductRepository) SearchProductsByPrice(ctx context.Context, minPrice, maxPrice int) ([]models.Product, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT id, name, description, price, is_active, created_at, updated_at
		 FROM products WHERE price BETWEEN $1 AND $2 ORDER BY price, id`,
		minPrice, maxPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to search products by price: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// UpdateProduct applies a partial update in one statement: empty name and
// description and a non-positive price leave the stored values untouched.
// Reading the row back from the statement avoids going through the cache,
// which may hold a stale snapshot.
func (r *ProductRepository) UpdateProduct(ctx context.Context, id int, req models.UpdateProductRequest) (*models.Product, error) {
	var p models.Product
	err := config.DB.QueryRow(ctx,
		`UPDATE products
		 SET name = COALESCE(NULLIF($1, ''), name),
		     description = COALESCE(NULLIF($2, ''), description),
		     price = CASE WHEN $3 > 0 THEN $3 ELSE price END,
		     updated_at = $4
		 WHERE id = $5
		 RETURNING id, name, description, price, is_active, created_at, updated_at`,
		req.Name, req.Description, req.Price, time.Now(), id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	invalidateProductCache(ctx, id)
	return &p, nil
}

// SetActive archives (false) or re-activates (true) a product.
func (r *ProductRepository) SetActive(ctx context.Context, id int, active bool) error {
	tag, err := config.DB.Exec(ctx,
		"UPDATE products SET is_active = $1, updated_at = $2 WHERE id = $3",
		active, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update product status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	invalidateProductCache(ctx, id)
	return nil
}

func scanProducts(rows pgx.Rows) ([]models.Product, error) {
	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}
