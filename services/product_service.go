package services

import (
	"context"
	"math"
	"ua-shop/models"
)

type ProductService struct {
	products ProductRepository
}

func NewProductService(products ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) GetActiveProducts(ctx context.Context, page, limit int) (*models.PaginationResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	products, total, err := s.products.GetActiveProducts(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return &models.PaginationResponse{
		Success: true,
		Message: "Products retrieved successfully",
		Data:    products,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.GetAllProducts(ctx)
}

func (s *ProductService) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	return s.products.GetProductByID(ctx, id)
}

func (s *ProductService) SearchByName(ctx context.Context, name string) ([]models.Product, error) {
	return s.products.SearchProductsByName(ctx, name)
}

// SearchByPrice finds products within a price range. A missing or
// non-positive maximum means unbounded.
func (s *ProductService) SearchByPrice(ctx context.Context, minPrice, maxPrice int) ([]models.Product, error) {
	if minPrice < 0 {
		minPrice = 0
	}
	if maxPrice <= 0 {
		maxPrice = math.MaxInt32
	}
	return s.products.SearchProductsByPrice(ctx, minPrice, maxPrice)
}

func (s *ProductService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}

	if err := s.products.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies the partial update against the stored row directly.
// It must not read through GetProductByID: the cache may serve a snapshot up
// to its TTL old, and merging onto that would write stale fields back.
func (s *ProductService) UpdateProduct(ctx context.Context, id int, req models.UpdateProductRequest) (*models.Product, error) {
	return s.products.UpdateProduct(ctx, id, req)
}

func (s *ProductService) ActivateProduct(ctx context.Context, id int) error {
	return s.products.SetActive(ctx, id, true)
}

func (s *ProductService) ArchiveProduct(ctx context.Context, id int) error {
	return s.products.SetActive(ctx, id, false)
}
