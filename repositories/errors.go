package repositories

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrLineNotFound    = errors.New("cart line not found")
	ErrOrderNotFound   = errors.New("order not found")

	// ErrCartConflict means the cart changed between read and write; the
	// caller must re-read and retry.
	ErrCartConflict = errors.New("cart version conflict")

	// ErrDuplicateCheckout means an order already exists for this cart
	// generation's checkout key.
	ErrDuplicateCheckout = errors.New("order already recorded for this checkout")
)
