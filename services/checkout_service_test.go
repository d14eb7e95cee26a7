package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"ua-shop/models"
	"ua-shop/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStorageDown = errors.New("storage unavailable")

// mockOrderRepo persists orders in memory and clears the cart through the
// shared mockCartRepo, mimicking the transactional contract. failAfterPersist
// simulates dying between recording the order and clearing the cart;
// conflictsLeft makes the next N commits lose the version check.
type mockOrderRepo struct {
	mu               sync.Mutex
	carts            *mockCartRepo
	orders           []*models.Order
	byKey            map[string]*models.Order
	nextID           int
	failAfterPersist bool
	conflictsLeft    int
}

func newMockOrderRepo(carts *mockCartRepo) *mockOrderRepo {
	return &mockOrderRepo{
		carts: carts,
		byKey: make(map[string]*models.Order),
	}
}

func (m *mockOrderRepo) CreateOrderAndClearCart(ctx context.Context, order *models.Order, cartVersion int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conflictsLeft > 0 {
		m.conflictsLeft--
		return repositories.ErrCartConflict
	}
	if _, dup := m.byKey[order.CheckoutKey]; dup {
		return repositories.ErrDuplicateCheckout
	}

	m.nextID++
	order.ID = m.nextID
	stored := *order
	m.orders = append(m.orders, &stored)
	m.byKey[stored.CheckoutKey] = &stored

	if m.failAfterPersist {
		m.failAfterPersist = false
		return errStorageDown
	}
	return m.carts.ClearCartAt(ctx, order.UserID, cartVersion)
}

func (m *mockOrderRepo) GetOrderByCheckoutKey(ctx context.Context, key string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byKey[key]
	if !ok {
		return nil, repositories.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) GetOrdersByUser(ctx context.Context, userID int) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for i := len(m.orders) - 1; i >= 0; i-- {
		if m.orders[i].UserID == userID {
			out = append(out, *m.orders[i])
		}
	}
	return out, nil
}

func (m *mockOrderRepo) GetAllOrders(ctx context.Context, page, limit int) ([]models.Order, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for i := len(m.orders) - 1; i >= 0; i-- {
		out = append(out, *m.orders[i])
	}
	return out, len(out), nil
}

func (m *mockOrderRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

type mockMailer struct {
	sent chan string
}

func newMockMailer() *mockMailer {
	return &mockMailer{sent: make(chan string, 1)}
}

func (m *mockMailer) SendOrderConfirmation(toEmail string, order *models.Order) error {
	m.sent <- toEmail
	return nil
}

func seedCart(t *testing.T, carts *mockCartRepo, userID int, lines ...models.CartItem) {
	t.Helper()
	for _, line := range lines {
		_, err := carts.AddItem(context.Background(), userID, line)
		require.NoError(t, err)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	carts := newMockCartRepo()
	orders := newMockOrderRepo(carts)
	svc := NewCheckoutService(carts, orders, nil)

	_, err := svc.Checkout(context.Background(), 7, "a@b.c")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, orders.count())
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	carts := newMockCartRepo()
	orders := newMockOrderRepo(carts)
	svc := NewCheckoutService(carts, orders, nil)
	ctx := context.Background()

	seedCart(t, carts, 7,
		models.CartItem{ProductID: 1, ProductName: "Mug", UnitPrice: 100, Quantity: 2},
		models.CartItem{ProductID: 2, ProductName: "Shirt", UnitPrice: 50, Quantity: 1},
	)

	order, err := svc.Checkout(ctx, 7, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, 7, order.UserID)
	assert.Equal(t, 250, order.TotalPrice)
	require.Len(t, order.ProductsOrdered, 2)
	assert.Equal(t, 2, order.ProductsOrdered[0].Quantity)
	assert.Equal(t, "Mug", order.ProductsOrdered[0].ProductName)
	assert.Equal(t, 1, order.ProductsOrdered[1].Quantity)
	assert.False(t, order.PurchasedOn.IsZero())

	cart, err := carts.GetCart(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 1, orders.count())
}

func TestCheckoutTwiceSecondIsEmpty(t *testing.T) {
	carts := newMockCartRepo()
	orders := newMockOrderRepo(carts)
	svc := NewCheckoutService(carts, orders, nil)
	ctx := context.Background()

	seedCart(t, carts, 7, models.CartItem{ProductID: 1, ProductName: "Mug", UnitPrice: 100, Quantity: 1})

	_, err := svc.Checkout(ctx, 7, "a@b.c")
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, 7, "a@b.c")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 1, orders.count())
}

func TestCheckoutRetryAfterPartialFailure(t *testing.T) {
	carts := newMockCartRepo()
	orders := newMockOrderRepo(carts)
	svc := NewCheckoutService(carts, orders, nil)
	ctx := context.Background()

	seedCart(t, carts, 7, models.CartItem{ProductID: 1, ProductName: "Mug", UnitPrice: 100, Quantity: 2})

	// First attempt records the order but dies before the cart is cleared.
	orders.failAfterPersist = true
	_, err := svc.Checkout(ctx, 7, "a@b.c")
	require.ErrorIs(t, err, errStorageDown)
	require.Equal(t, 1, orders.count())

	cart, err := carts.GetCart(ctx, 7)
	require.NoError(t, err)
	require.NotEmpty(t, cart.Items)

	// The retry finds the order recorded for this cart generation, finishes
	// the clear, and returns it instead of recording a second one.
	order, err := svc.Checkout(ctx, 7, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, 1, order.ID)
	assert.Equal(t, 200, order.TotalPrice)
	assert.Equal(t, 1, orders.count())

	cart, err = carts.GetCart(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCheckoutRetriesOnConflict(t *testing.T) {
	carts := newMockCartRepo()
	orders := newMockOrderRepo(carts)
	svc := NewCheckoutService(carts, orders, nil)
	ctx := context.Background()

	seedCart(t, carts, 7, models.CartItem{ProductID: 1, ProductName: "Mug", UnitPrice: 100, Quantity: 1})

	orders.conflictsLeft = 1
	order, err := svc.Checkout(ctx, 7, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, 100, order.TotalPrice)
	assert.Equal(t, 1, orders.count())
}

func TestCheckoutGivesUpAfterRepeatedConflicts(t *testing.T) {
	carts := newMockCartRepo()
	orders := newMockOrderRepo(carts)
	svc := NewCheckoutService(carts, orders, nil)
	ctx := context.Background()

	seedCart(t, carts, 7, models.CartItem{ProductID: 1, ProductName: "Mug", UnitPrice: 100, Quantity: 1})

	orders.conflictsLeft = maxCheckoutAttempts + 1
	_, err := svc.Checkout(ctx, 7, "a@b.c")
	assert.ErrorIs(t, err, ErrCartConflict)

	cart, err := carts.GetCart(ctx, 7)
	require.NoError(t, err)
	assert.NotEmpty(t, cart.Items)
}

func TestCheckoutSendsConfirmationEmail(t *testing.T) {
	carts := newMockCartRepo()
	orders := newMockOrderRepo(carts)
	mailer := newMockMailer()
	svc := NewCheckoutService(carts, orders, mailer)
	ctx := context.Background()

	seedCart(t, carts, 7, models.CartItem{ProductID: 1, ProductName: "Mug", UnitPrice: 100, Quantity: 1})

	_, err := svc.Checkout(ctx, 7, "buyer@example.com")
	require.NoError(t, err)

	select {
	case to := <-mailer.sent:
		assert.Equal(t, "buyer@example.com", to)
	case <-time.After(time.Second):
		t.Fatal("confirmation email was not sent")
	}
}

func TestCheckoutOrderHistoryNewestFirst(t *testing.T) {
	carts := newMockCartRepo()
	orders := newMockOrderRepo(carts)
	svc := NewCheckoutService(carts, orders, nil)
	ctx := context.Background()

	seedCart(t, carts, 7, models.CartItem{ProductID: 1, ProductName: "Mug", UnitPrice: 100, Quantity: 1})
	first, err := svc.Checkout(ctx, 7, "")
	require.NoError(t, err)

	seedCart(t, carts, 7, models.CartItem{ProductID: 2, ProductName: "Shirt", UnitPrice: 250, Quantity: 1})
	second, err := svc.Checkout(ctx, 7, "")
	require.NoError(t, err)

	history, err := NewOrderService(orders).GetMyOrders(ctx, 7)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)
}
