package services

import (
	"context"
	"errors"
	"log"
	"time"
	"ua-shop/models"
	"ua-shop/repositories"
)

// maxCheckoutAttempts bounds the retry loop when checkout keeps losing the
// race against concurrent cart mutations.
const maxCheckoutAttempts = 3

// CheckoutService performs the single state transition that turns a cart
// into an order. The order snapshot and the cart clear commit together; a
// retried checkout that finds an order already recorded for the current cart
// generation clears the cart instead of recording a second one.
type CheckoutService struct {
	carts  CartRepository
	orders OrderRepository
	mailer Mailer
}

func NewCheckoutService(carts CartRepository, orders OrderRepository, mailer Mailer) *CheckoutService {
	return &CheckoutService{
		carts:  carts,
		orders: orders,
		mailer: mailer,
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, userID int, email string) (*models.Order, error) {
	for attempt := 0; attempt < maxCheckoutAttempts; attempt++ {
		cart, err := s.carts.GetCart(ctx, userID)
		if err != nil {
			return nil, err
		}
		if len(cart.Items) == 0 {
			return nil, ErrEmptyCart
		}

		// An earlier attempt may have persisted the order and then died
		// before the cart was cleared. The checkout key identifies that cart
		// generation, so finish the clear and hand back the existing order
		// instead of recording it twice.
		existing, err := s.orders.GetOrderByCheckoutKey(ctx, cart.CheckoutKey)
		if err == nil {
			if err := s.carts.ClearCartAt(ctx, userID, cart.Version); err != nil {
				if errors.Is(err, repositories.ErrCartConflict) {
					continue
				}
				return nil, err
			}
			return existing, nil
		}
		if !errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, err
		}

		order := buildOrder(cart)
		err = s.orders.CreateOrderAndClearCart(ctx, order, cart.Version)
		if errors.Is(err, repositories.ErrCartConflict) || errors.Is(err, repositories.ErrDuplicateCheckout) {
			// The cart moved on between read and commit; re-read and retry
			// with a fresh snapshot.
			continue
		}
		if err != nil {
			return nil, err
		}

		s.sendConfirmation(email, order)
		return order, nil
	}

	return nil, ErrCartConflict
}

// buildOrder copies the cart lines into an immutable order snapshot. Lines
// keep product id, name, and quantity; the price is recorded once as the
// cart-level total.
func buildOrder(cart *models.Cart) *models.Order {
	order := &models.Order{
		UserID:          cart.UserID,
		TotalPrice:      cart.TotalPrice,
		CheckoutKey:     cart.CheckoutKey,
		PurchasedOn:     time.Now(),
		ProductsOrdered: make([]models.OrderItem, 0, len(cart.Items)),
	}
	for _, line := range cart.Items {
		order.ProductsOrdered = append(order.ProductsOrdered, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
		})
	}
	return order
}

func (s *CheckoutService) sendConfirmation(email string, order *models.Order) {
	if s.mailer == nil || email == "" {
		return
	}
	go func() {
		if err := s.mailer.SendOrderConfirmation(email, order); err != nil {
			log.Printf("order confirmation email failed: %v", err)
		}
	}()
}
