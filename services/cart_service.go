package services

import (
	"context"
	"errors"
	"ua-shop/models"
	"ua-shop/repositories"
)

// CartService is the sole authority over a user's in-progress selections.
// Catalog data is snapshotted into the line at the moment of each add, so
// later catalog changes never retroactively alter a cart.
type CartService struct {
	products ProductReader
	carts    CartRepository
}

func NewCartService(products ProductReader, carts CartRepository) *CartService {
	return &CartService{
		products: products,
		carts:    carts,
	}
}

func (s *CartService) GetCart(ctx context.Context, userID int) (*models.Cart, error) {
	return s.carts.GetCart(ctx, userID)
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, ErrProductUnavailable
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductUnavailable
	}

	item := models.CartItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    quantity,
	}
	return s.carts.AddItem(ctx, userID, item)
}

// UpdateQuantity sets a line to an exact quantity. A value below 1 is
// rejected, never treated as removal; RemoveFromCart is the explicit way out.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.carts.UpdateItemQuantity(ctx, userID, productID, quantity)
	if errors.Is(err, repositories.ErrLineNotFound) {
		return nil, ErrLineNotFound
	}
	return cart, err
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID int) (*models.Cart, error) {
	return s.carts.RemoveItem(ctx, userID, productID)
}

func (s *CartService) ClearCart(ctx context.Context, userID int) (*models.Cart, error) {
	return s.carts.ClearCart(ctx, userID)
}
