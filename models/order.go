package models

import "time"

type OrderItem struct {
	ID          int    `json:"-"`
	OrderID     int    `json:"-"`
	ProductID   int    `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// Order is immutable once written. Lines carry quantity only; the price is
// recorded as the cart-level total captured at checkout.
type Order struct {
	ID              int         `json:"id"`
	UserID          int         `json:"userId"`
	ProductsOrdered []OrderItem `json:"productsOrdered"`
	TotalPrice      int         `json:"totalPrice"`
	CheckoutKey     string      `json:"-"`
	PurchasedOn     time.Time   `json:"purchasedOn"`
}
