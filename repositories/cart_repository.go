package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"
	"ua-shop/config"
	"ua-shop/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CartRepository owns the one-cart-per-user table. Every mutation runs in a
// single transaction holding a FOR UPDATE lock on the cart row, so operations
// on the same user's cart are linearizable: concurrent adds cannot read the
// same line state and overwrite each other's increment.
type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

const lockCartSQL = "SELECT id, version, checkout_key FROM carts WHERE user_id = $1 FOR UPDATE"

// lockCart locks the user's cart row, creating it lazily when create is set.
// Returns pgx.ErrNoRows when the cart does not exist and create is false.
func (r *CartRepository) lockCart(ctx context.Context, tx pgx.Tx, userID int, create bool) (int, error) {
	var cartID, version int
	var key string

	err := tx.QueryRow(ctx, lockCartSQL, userID).Scan(&cartID, &version, &key)
	if errors.Is(err, pgx.ErrNoRows) {
		if !create {
			return 0, err
		}
		now := time.Now()
		err = tx.QueryRow(ctx,
			"INSERT INTO carts (user_id, version, checkout_key, created_at, updated_at) VALUES ($1, 1, $2, $3, $3) RETURNING id",
			userID, uuid.NewString(), now).Scan(&cartID)
		if err != nil {
			return 0, fmt.Errorf("failed to create cart: %w", err)
		}
		return cartID, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to lock cart: %w", err)
	}
	return cartID, nil
}

func (r *CartRepository) loadCart(ctx context.Context, q dbtx, userID int) (*models.Cart, error) {
	cart := &models.Cart{
		UserID: userID,
		Items:  []models.CartItem{},
	}

	err := q.QueryRow(ctx,
		"SELECT id, version, checkout_key, created_at, updated_at FROM carts WHERE user_id = $1",
		userID).Scan(&cart.ID, &cart.Version, &cart.CheckoutKey, &cart.CreatedAt, &cart.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// No cart yet is not an error, it is an empty cart.
		return cart, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	rows, err := q.Query(ctx,
		`SELECT id, cart_id, product_id, product_name, unit_price, quantity, created_at, updated_at
		 FROM cart_items WHERE cart_id = $1 ORDER BY created_at, id`,
		cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.ProductName,
			&item.UnitPrice, &item.Quantity, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cart items: %w", err)
	}

	cart.RecalculateTotal()
	return cart, nil
}

func (r *CartRepository) GetCart(ctx context.Context, userID int) (*models.Cart, error) {
	return r.loadCart(ctx, config.DB, userID)
}

// AddItem upserts a line for the item's product: an existing line has its
// quantity incremented and its name/price snapshot refreshed to the values
// carried by item, a missing line is inserted as-is.
func (r *CartRepository) AddItem(ctx context.Context, userID int, item models.CartItem) (*models.Cart, error) {
	var cart *models.Cart

	err := withTx(ctx, func(tx pgx.Tx) error {
		cartID, err := r.lockCart(ctx, tx, userID, true)
		if err != nil {
			return err
		}

		now := time.Now()
		_, err = tx.Exec(ctx,
			`INSERT INTO cart_items (cart_id, product_id, product_name, unit_price, quantity, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $6)
			 ON CONFLICT (cart_id, product_id) DO UPDATE
			 SET quantity = cart_items.quantity + EXCLUDED.quantity,
			     product_name = EXCLUDED.product_name,
			     unit_price = EXCLUDED.unit_price,
			     updated_at = EXCLUDED.updated_at`,
			cartID, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity, now)
		if err != nil {
			return fmt.Errorf("failed to upsert cart item: %w", err)
		}

		if err := touchCart(ctx, tx, cartID); err != nil {
			return err
		}

		cart, err = r.loadCart(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateItemQuantity sets the line's quantity to the given value. It never
// removes a line; the caller has already rejected quantities below 1.
func (r *CartRepository) UpdateItemQuantity(ctx context.Context, userID, productID, quantity int) (*models.Cart, error) {
	var cart *models.Cart

	err := withTx(ctx, func(tx pgx.Tx) error {
		cartID, err := r.lockCart(ctx, tx, userID, false)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrLineNotFound
		}
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx,
			"UPDATE cart_items SET quantity = $1, updated_at = $2 WHERE cart_id = $3 AND product_id = $4",
			quantity, time.Now(), cartID, productID)
		if err != nil {
			return fmt.Errorf("failed to update cart item quantity: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrLineNotFound
		}

		if err := touchCart(ctx, tx, cartID); err != nil {
			return err
		}

		cart, err = r.loadCart(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem deletes the line if present. Removing an absent line is a no-op,
// not an error.
func (r *CartRepository) RemoveItem(ctx context.Context, userID, productID int) (*models.Cart, error) {
	var cart *models.Cart

	err := withTx(ctx, func(tx pgx.Tx) error {
		cartID, err := r.lockCart(ctx, tx, userID, false)
		if errors.Is(err, pgx.ErrNoRows) {
			cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
			return nil
		}
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx,
			"DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2",
			cartID, productID)
		if err != nil {
			return fmt.Errorf("failed to remove cart item: %w", err)
		}
		if tag.RowsAffected() > 0 {
			if err := touchCart(ctx, tx, cartID); err != nil {
				return err
			}
		}

		cart, err = r.loadCart(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart removes every line. Idempotent.
func (r *CartRepository) ClearCart(ctx context.Context, userID int) (*models.Cart, error) {
	var cart *models.Cart

	err := withTx(ctx, func(tx pgx.Tx) error {
		cartID, err := r.lockCart(ctx, tx, userID, false)
		if errors.Is(err, pgx.ErrNoRows) {
			cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, "DELETE FROM cart_items WHERE cart_id = $1", cartID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		if err := touchCart(ctx, tx, cartID); err != nil {
			return err
		}

		cart, err = r.loadCart(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCartAt clears the cart only if it is still at the given version.
// Used by checkout recovery: a clear must not discard lines added after the
// generation the order was built from.
func (r *CartRepository) ClearCartAt(ctx context.Context, userID, version int) error {
	return withTx(ctx, func(tx pgx.Tx) error {
		var cartID, current int
		var key string

		err := tx.QueryRow(ctx, lockCartSQL, userID).Scan(&cartID, &current, &key)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCartConflict
		}
		if err != nil {
			return fmt.Errorf("failed to lock cart: %w", err)
		}
		if current != version {
			return ErrCartConflict
		}

		if _, err := tx.Exec(ctx, "DELETE FROM cart_items WHERE cart_id = $1", cartID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return touchCart(ctx, tx, cartID)
	})
}
