package models

import "time"

type CartItem struct {
	ID          int       `json:"id"`
	CartID      int       `json:"-"`
	ProductID   int       `json:"productId"`
	ProductName string    `json:"productName"`
	UnitPrice   int       `json:"price"`
	Quantity    int       `json:"quantity"`
	Subtotal    int       `json:"subtotal"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Cart is the per-user set of pending selections. Version and CheckoutKey
// identify the cart generation: both change on every mutation, so a checkout
// that read an older generation cannot clear lines it never saw.
type Cart struct {
	ID          int        `json:"-"`
	UserID      int        `json:"userId"`
	Items       []CartItem `json:"cartItems"`
	TotalPrice  int        `json:"totalPrice"`
	Version     int        `json:"-"`
	CheckoutKey string     `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RecalculateTotal derives every line subtotal and the cart total from the
// current lines. TotalPrice is never trusted from storage.
func (c *Cart) RecalculateTotal() {
	total := 0
	for i := range c.Items {
		c.Items[i].Subtotal = c.Items[i].UnitPrice * c.Items[i].Quantity
		total += c.Items[i].Subtotal
	}
	c.TotalPrice = total
}
