package services

import (
	"context"
	"ua-shop/models"
)

// ProductReader is the catalog surface the cart consumes: product existence,
// current name, current price, active flag. Read-only.
type ProductReader interface {
	GetProductByID(ctx context.Context, id int) (*models.Product, error)
}

type ProductRepository interface {
	ProductReader
	GetActiveProducts(ctx context.Context, page, limit int) ([]models.Product, int, error)
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	SearchProductsByName(ctx context.Context, name string) ([]models.Product, error)
	SearchProductsByPrice(ctx context.Context, minPrice, maxPrice int) ([]models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id int, req models.UpdateProductRequest) (*models.Product, error)
	SetActive(ctx context.Context, id int, active bool) error
}

type CartRepository interface {
	GetCart(ctx context.Context, userID int) (*models.Cart, error)
	AddItem(ctx context.Context, userID int, item models.CartItem) (*models.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID, productID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, productID int) (*models.Cart, error)
	ClearCart(ctx context.Context, userID int) (*models.Cart, error)
	ClearCartAt(ctx context.Context, userID, version int) error
}

type OrderRepository interface {
	CreateOrderAndClearCart(ctx context.Context, order *models.Order, cartVersion int) error
	GetOrderByCheckoutKey(ctx context.Context, key string) (*models.Order, error)
	GetOrdersByUser(ctx context.Context, userID int) ([]models.Order, error)
	GetAllOrders(ctx context.Context, page, limit int) ([]models.Order, int, error)
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id int, hashedPassword string) error
	SetAdmin(ctx context.Context, id int) error
}

// Mailer sends the post-checkout confirmation. Optional; a nil Mailer
// disables emails.
type Mailer interface {
	SendOrderConfirmation(toEmail string, order *models.Order) error
}
