package repositories

import (
	"context"
	"errors"
	"fmt"
	"ua-shop/config"
	"ua-shop/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// OrderRepository is the append-only ledger of completed checkouts. Orders
// are never updated or deleted through this type.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// CreateOrderAndClearCart commits the checkout state transition as one
// transaction: lock the cart row, verify the cart is still at the generation
// the order snapshot was built from, append the order, and delete the cart
// lines. Either everything commits or nothing does, so no reader ever sees a
// partial order or a cart and an order both claiming the same lines.
func (r *OrderRepository) CreateOrderAndClearCart(ctx context.Context, order *models.Order, cartVersion int) error {
	return withTx(ctx, func(tx pgx.Tx) error {
		var cartID, version int
		var key string

		err := tx.QueryRow(ctx, lockCartSQL, order.UserID).Scan(&cartID, &version, &key)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCartConflict
		}
		if err != nil {
			return fmt.Errorf("failed to lock cart: %w", err)
		}
		if version != cartVersion {
			return ErrCartConflict
		}

		err = tx.QueryRow(ctx,
			"INSERT INTO orders (user_id, total_price, checkout_key, purchased_on) VALUES ($1, $2, $3, $4) RETURNING id",
			order.UserID, order.TotalPrice, order.CheckoutKey, order.PurchasedOn).Scan(&order.ID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return ErrDuplicateCheckout
			}
			return fmt.Errorf("failed to insert order: %w", err)
		}

		for i := range order.ProductsOrdered {
			item := &order.ProductsOrdered[i]
			item.OrderID = order.ID
			err := tx.QueryRow(ctx,
				"INSERT INTO order_items (order_id, product_id, product_name, quantity) VALUES ($1, $2, $3, $4) RETURNING id",
				item.OrderID, item.ProductID, item.ProductName, item.Quantity).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("failed to insert order item: %w", err)
			}
		}

		if _, err := tx.Exec(ctx, "DELETE FROM cart_items WHERE cart_id = $1", cartID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return touchCart(ctx, tx, cartID)
	})
}

// GetOrderByCheckoutKey finds the order recorded for a cart generation, if
// any. Checkout uses this to recover when an earlier attempt persisted the
// order but failed before clearing the cart.
func (r *OrderRepository) GetOrderByCheckoutKey(ctx context.Context, key string) (*models.Order, error) {
	order := &models.Order{}
	err := config.DB.QueryRow(ctx,
		"SELECT id, user_id, total_price, checkout_key, purchased_on FROM orders WHERE checkout_key = $1",
		key).Scan(&order.ID, &order.UserID, &order.TotalPrice, &order.CheckoutKey, &order.PurchasedOn)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order by checkout key: %w", err)
	}

	if err := r.attachItems(ctx, []*models.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrdersByUser returns the user's orders, newest first.
func (r *OrderRepository) GetOrdersByUser(ctx context.Context, userID int) ([]models.Order, error) {
	rows, err := config.DB.Query(ctx,
		"SELECT id, user_id, total_price, checkout_key, purchased_on FROM orders WHERE user_id = $1 ORDER BY purchased_on DESC, id DESC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	refs := make([]*models.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.attachItems(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetAllOrders returns a page of orders across all users, newest first.
// Authorization is the caller's responsibility.
func (r *OrderRepository) GetAllOrders(ctx context.Context, page, limit int) ([]models.Order, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := config.DB.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	rows, err := config.DB.Query(ctx,
		"SELECT id, user_id, total_price, checkout_key, purchased_on FROM orders ORDER BY purchased_on DESC, id DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}

	refs := make([]*models.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.attachItems(ctx, refs); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func scanOrders(rows pgx.Rows) ([]models.Order, error) {
	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalPrice, &o.CheckoutKey, &o.PurchasedOn); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.ProductsOrdered = []models.OrderItem{}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) attachItems(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int, 0, len(orders))
	byID := make(map[int]*models.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	rows, err := config.DB.Query(ctx,
		"SELECT id, order_id, product_id, product_name, quantity FROM order_items WHERE order_id = ANY($1) ORDER BY id",
		ids)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if o, ok := byID[item.OrderID]; ok {
			o.ProductsOrdered = append(o.ProductsOrdered, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read order items: %w", err)
	}
	return nil
}
