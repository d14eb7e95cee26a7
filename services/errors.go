package services

import "errors"

var (
	// ErrProductUnavailable means the product does not exist or is inactive.
	ErrProductUnavailable = errors.New("product does not exist or is unavailable")

	// ErrInvalidQuantity rejects any requested quantity below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrLineNotFound means a quantity update targeted a product that is not
	// in the cart.
	ErrLineNotFound = errors.New("product is not in the cart")

	// ErrEmptyCart rejects checkout of a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrCartConflict surfaces after the bounded retry loop kept losing the
	// race against concurrent mutations of the same cart.
	ErrCartConflict = errors.New("cart was modified concurrently, please retry")
)
