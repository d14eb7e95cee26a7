package services

import (
	"context"
	"math"
	"ua-shop/models"
)

type OrderService struct {
	orders OrderRepository
}

func NewOrderService(orders OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// GetMyOrders returns the user's own orders, newest first.
func (s *OrderService) GetMyOrders(ctx context.Context, userID int) ([]models.Order, error) {
	return s.orders.GetOrdersByUser(ctx, userID)
}

// GetAllOrders is the administrative view across all users. The caller must
// already be authorized as an administrator.
func (s *OrderService) GetAllOrders(ctx context.Context, page, limit int) (*models.PaginationResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	orders, total, err := s.orders.GetAllOrders(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return &models.PaginationResponse{
		Success: true,
		Message: "Orders retrieved successfully",
		Data:    orders,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	}, nil
}
