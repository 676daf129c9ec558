// Package cart holds the customer's cart. There is no client-side cache:
// every mutation is followed by a full reload from the server.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/dukerupert/dukanam/internal/model"
)

var (
	// ErrNotCustomer is returned by mutations when the user has no cart.
	ErrNotCustomer = errors.New("only customers can add items to cart")
	ErrEmptyCart   = errors.New("cart is empty")
)

// DefaultPaymentMethod is cash on delivery.
const DefaultPaymentMethod = "COD"

// Backend is the part of the API the cart needs.
type Backend interface {
	Cart(ctx context.Context, userID int64) (*model.Cart, error)
	AddToCart(ctx context.Context, userID int64, req model.AddToCartRequest) error
	UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) error
	RemoveCartItem(ctx context.Context, userID, itemID int64) error
	PlaceOrder(ctx context.Context, userID int64, req model.PlaceOrderRequest) (*model.Order, error)
}

type Users interface {
	Get() (model.AuthUser, bool)
}

// CountSink receives the badge count after each load.
type CountSink interface {
	Set(n int)
}

type Manager struct {
	mu       sync.RWMutex
	backend  Backend
	users    Users
	count    CountSink
	cart     model.Cart
	onChange func(model.Cart)
	logger   *slog.Logger
}

// NewManager creates a cart manager. count may be nil.
func NewManager(backend Backend, users Users, count CountSink, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		backend: backend,
		users:   users,
		count:   count,
		logger:  logger.With("component", "cart"),
	}
}

func (m *Manager) OnChange(fn func(model.Cart)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

func (m *Manager) customer() (model.AuthUser, bool) {
	u, ok := m.users.Get()
	return u, ok && u.IsCustomer()
}

// Load replaces the local cart with the server's. Users who are not
// customers get an empty cart. A failed load zeroes the badge.
func (m *Manager) Load(ctx context.Context) (model.Cart, error) {
	u, ok := m.customer()
	if !ok {
		m.set(model.Cart{})
		return model.Cart{}, nil
	}

	c, err := m.backend.Cart(ctx, u.UserID)
	if err != nil {
		if m.count != nil {
			m.count.Set(0)
		}
		return model.Cart{}, fmt.Errorf("load cart: %w", err)
	}

	if diff := math.Abs(c.ComputedTotal() - c.TotalAmount); diff > 0.005 {
		m.logger.Warn("cart total mismatch",
			"server_total", c.TotalAmount,
			"computed_total", c.ComputedTotal(),
		)
	}
	m.set(*c)
	return *c, nil
}

func (m *Manager) set(c model.Cart) {
	m.mu.Lock()
	m.cart = c
	fn := m.onChange
	m.mu.Unlock()

	if m.count != nil {
		m.count.Set(c.ItemCount())
	}
	if fn != nil {
		fn(c)
	}
}

// Add puts quantity of a product in the cart, then reloads.
func (m *Manager) Add(ctx context.Context, productID int64, quantity int) (model.Cart, error) {
	u, ok := m.customer()
	if !ok {
		return model.Cart{}, ErrNotCustomer
	}
	if quantity <= 0 {
		quantity = 1
	}
	req := model.AddToCartRequest{ProductID: productID, Quantity: quantity}
	if err := m.backend.AddToCart(ctx, u.UserID, req); err != nil {
		return model.Cart{}, fmt.Errorf("add to cart: %w", err)
	}
	return m.Load(ctx)
}

// Update sets an item's quantity, then reloads.
func (m *Manager) Update(ctx context.Context, itemID int64, quantity int) (model.Cart, error) {
	u, ok := m.customer()
	if !ok {
		return model.Cart{}, ErrNotCustomer
	}
	if quantity < 1 {
		return model.Cart{}, fmt.Errorf("update cart item: quantity must be at least 1")
	}
	if err := m.backend.UpdateCartItem(ctx, u.UserID, itemID, quantity); err != nil {
		return model.Cart{}, fmt.Errorf("update cart item: %w", err)
	}
	return m.Load(ctx)
}

// Remove deletes an item, then reloads.
func (m *Manager) Remove(ctx context.Context, itemID int64) (model.Cart, error) {
	u, ok := m.customer()
	if !ok {
		return model.Cart{}, ErrNotCustomer
	}
	if err := m.backend.RemoveCartItem(ctx, u.UserID, itemID); err != nil {
		return model.Cart{}, fmt.Errorf("remove cart item: %w", err)
	}
	return m.Load(ctx)
}

// Cart returns the last loaded cart.
func (m *Manager) Cart() model.Cart {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c := m.cart
	c.Items = append([]model.CartItem(nil), m.cart.Items...)
	return c
}

// Count is the header badge: total quantity across items.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cart.ItemCount()
}

// StoreGroup is the part of the cart that becomes one order.
type StoreGroup struct {
	StoreID   int64
	StoreName string
	Items     []model.CartItem
}

// Total is the group's computed subtotal.
func (g StoreGroup) Total() float64 {
	var t float64
	for _, item := range g.Items {
		t += item.LineTotal()
	}
	return t
}

// GroupByStore splits items by store, in order of first appearance.
func GroupByStore(items []model.CartItem) []StoreGroup {
	var groups []StoreGroup
	index := map[int64]int{}
	for _, item := range items {
		i, ok := index[item.StoreID]
		if !ok {
			i = len(groups)
			index[item.StoreID] = i
			groups = append(groups, StoreGroup{StoreID: item.StoreID, StoreName: item.StoreName})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// Checkout places one order per store in the cart and reloads. Orders are
// placed in sequence; on failure the orders already placed are returned
// with the error.
func (m *Manager) Checkout(ctx context.Context, address, paymentMethod string) ([]model.Order, error) {
	u, ok := m.customer()
	if !ok {
		return nil, ErrNotCustomer
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("checkout: delivery address is required")
	}
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	c, err := m.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var orders []model.Order
	for _, g := range GroupByStore(c.Items) {
		o, err := m.backend.PlaceOrder(ctx, u.UserID, model.PlaceOrderRequest{
			StoreID:       g.StoreID,
			Address:       address,
			PaymentMethod: paymentMethod,
		})
		if err != nil {
			m.reloadQuietly(ctx)
			return orders, fmt.Errorf("place order for store %d: %w", g.StoreID, err)
		}
		m.logger.Info("order placed", "order_id", o.OrderID, "store_id", g.StoreID)
		orders = append(orders, *o)
	}

	m.reloadQuietly(ctx)
	return orders, nil
}

func (m *Manager) reloadQuietly(ctx context.Context) {
	if _, err := m.Load(ctx); err != nil {
		m.logger.Warn("reload cart", "error", err)
	}
}

// FormatRupees renders an amount the way the storefront does: "₹250",
// "₹99.5". No thousands separators, no forced decimals.
func FormatRupees(amount float64) string {
	return "₹" + strconv.FormatFloat(amount, 'f', -1, 64)
}

// Display renders the server's total. The server value is authoritative
// even when it disagrees with the computed total.
func Display(c model.Cart) string {
	return FormatRupees(c.TotalAmount)
}
