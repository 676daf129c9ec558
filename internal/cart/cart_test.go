package cart

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/dukerupert/dukanam/internal/auth"
	"github.com/dukerupert/dukanam/internal/model"
)

// fakeServer keeps a cart the way the backend does and recomputes the
// total on every change.
type fakeServer struct {
	items    []model.CartItem
	total    *float64
	nextID   int64
	loads    int
	placed   []model.PlaceOrderRequest
	placeErr map[int64]error
	loadErr  error
	prices   map[int64]model.CartItem
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		nextID: 1,
		prices: map[int64]model.CartItem{
			10: {ProductID: 10, ProductName: "Rice 1kg", Price: 100, StoreID: 1, StoreName: "Sharma Kirana"},
			20: {ProductID: 20, ProductName: "Milk 500ml", Price: 50, StoreID: 2, StoreName: "Dairy Point"},
			30: {ProductID: 30, ProductName: "Atta 5kg", Price: 240, StoreID: 1, StoreName: "Sharma Kirana"},
		},
	}
}

func (f *fakeServer) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	f.loads++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	c := model.Cart{CartID: 1, Items: append([]model.CartItem(nil), f.items...)}
	c.TotalAmount = c.ComputedTotal()
	if f.total != nil {
		c.TotalAmount = *f.total
	}
	return &c, nil
}

func (f *fakeServer) AddToCart(ctx context.Context, userID int64, req model.AddToCartRequest) error {
	for i := range f.items {
		if f.items[i].ProductID == req.ProductID {
			f.items[i].Quantity += req.Quantity
			return nil
		}
	}
	item := f.prices[req.ProductID]
	item.ItemID = f.nextID
	item.Quantity = req.Quantity
	f.nextID++
	f.items = append(f.items, item)
	return nil
}

func (f *fakeServer) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) error {
	for i := range f.items {
		if f.items[i].ItemID == itemID {
			f.items[i].Quantity = quantity
			return nil
		}
	}
	return errors.New("item not found")
}

func (f *fakeServer) RemoveCartItem(ctx context.Context, userID, itemID int64) error {
	kept := f.items[:0]
	for _, item := range f.items {
		if item.ItemID != itemID {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeServer) PlaceOrder(ctx context.Context, userID int64, req model.PlaceOrderRequest) (*model.Order, error) {
	if err := f.placeErr[req.StoreID]; err != nil {
		return nil, err
	}
	f.placed = append(f.placed, req)
	kept := f.items[:0]
	for _, item := range f.items {
		if item.StoreID != req.StoreID {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return &model.Order{OrderID: int64(len(f.placed)), Status: model.OrderPending}, nil
}

func customerHolder() *auth.Holder {
	return auth.NewHolder(&model.AuthUser{UserID: 1, Role: model.RoleCustomer})
}

func TestExampleCartRendersServerTotal(t *testing.T) {
	srv := newFakeServer()
	m := NewManager(srv, customerHolder(), nil, nil)
	ctx := context.Background()

	if _, err := m.Add(ctx, 10, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	c, err := m.Add(ctx, 20, 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if got := Display(c); got != "₹250" {
		t.Errorf("display = %q, want %q", got, "₹250")
	}
	if c.ComputedTotal() != 250 {
		t.Errorf("computed = %v, want 250", c.ComputedTotal())
	}
}

func TestEveryMutationReloads(t *testing.T) {
	srv := newFakeServer()
	m := NewManager(srv, customerHolder(), nil, nil)
	ctx := context.Background()

	m.Add(ctx, 10, 1)
	c, _ := m.Update(ctx, 1, 3)
	if c.ComputedTotal() != 300 {
		t.Errorf("after update computed = %v, want 300", c.ComputedTotal())
	}
	c, _ = m.Remove(ctx, 1)
	if len(c.Items) != 0 || c.ComputedTotal() != 0 {
		t.Errorf("after remove = %+v", c)
	}
	if srv.loads != 3 {
		t.Errorf("loads = %d, want 3", srv.loads)
	}
}

func TestCountIsSumOfQuantities(t *testing.T) {
	srv := newFakeServer()
	var badge auth.CartCount
	m := NewManager(srv, customerHolder(), &badge, nil)
	ctx := context.Background()

	m.Add(ctx, 10, 2)
	m.Add(ctx, 20, 3)

	if m.Count() != 5 {
		t.Errorf("count = %d, want 5", m.Count())
	}
	if badge.Get() != 5 {
		t.Errorf("badge = %d, want 5", badge.Get())
	}
}

func TestNonCustomerHasNoCart(t *testing.T) {
	srv := newFakeServer()
	var badge auth.CartCount
	badge.Set(4)
	owner := auth.NewHolder(&model.AuthUser{UserID: 2, Role: model.RoleStoreOwner})
	m := NewManager(srv, owner, &badge, nil)

	c, err := m.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Items) != 0 || badge.Get() != 0 {
		t.Errorf("cart = %+v badge = %d, want empty", c, badge.Get())
	}
	if _, err := m.Add(context.Background(), 10, 1); !errors.Is(err, ErrNotCustomer) {
		t.Errorf("err = %v, want ErrNotCustomer", err)
	}
	if srv.loads != 0 {
		t.Errorf("loads = %d, want no server calls", srv.loads)
	}
}

func TestLoadFailureZeroesBadge(t *testing.T) {
	srv := newFakeServer()
	var badge auth.CartCount
	badge.Set(3)
	srv.loadErr = errors.New("down")
	m := NewManager(srv, customerHolder(), &badge, nil)

	if _, err := m.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if badge.Get() != 0 {
		t.Errorf("badge = %d, want 0", badge.Get())
	}
}

func TestTotalMismatchLogged(t *testing.T) {
	srv := newFakeServer()
	srv.items = []model.CartItem{{ItemID: 1, Price: 100, Quantity: 2}}
	wrong := 199.0
	srv.total = &wrong

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m := NewManager(srv, customerHolder(), nil, logger)

	c, err := m.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if Display(c) != "₹199" {
		t.Errorf("display = %q, want server value ₹199", Display(c))
	}
	if !strings.Contains(buf.String(), "cart total mismatch") {
		t.Errorf("log = %q, want mismatch warning", buf.String())
	}
}

func TestUpdateRejectsZero(t *testing.T) {
	m := NewManager(newFakeServer(), customerHolder(), nil, nil)
	if _, err := m.Update(context.Background(), 1, 0); err == nil {
		t.Error("expected error for zero quantity")
	}
}

func TestCheckoutOneOrderPerStore(t *testing.T) {
	srv := newFakeServer()
	m := NewManager(srv, customerHolder(), nil, nil)
	ctx := context.Background()
	m.Add(ctx, 10, 1)
	m.Add(ctx, 20, 1)
	m.Add(ctx, 30, 2)

	orders, err := m.Checkout(ctx, "12 MG Road, Pune", "")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("orders = %d, want 2", len(orders))
	}
	if srv.placed[0].StoreID != 1 || srv.placed[1].StoreID != 2 {
		t.Errorf("stores = %d, %d, want 1, 2", srv.placed[0].StoreID, srv.placed[1].StoreID)
	}
	if srv.placed[0].PaymentMethod != DefaultPaymentMethod {
		t.Errorf("payment = %q, want %q", srv.placed[0].PaymentMethod, DefaultPaymentMethod)
	}
	if m.Count() != 0 {
		t.Errorf("count = %d, want 0 after checkout", m.Count())
	}
}

func TestCheckoutPartialFailure(t *testing.T) {
	srv := newFakeServer()
	srv.placeErr = map[int64]error{2: errors.New("store closed")}
	m := NewManager(srv, customerHolder(), nil, nil)
	ctx := context.Background()
	m.Add(ctx, 10, 1)
	m.Add(ctx, 20, 1)

	orders, err := m.Checkout(ctx, "Pune", "COD")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(orders) != 1 {
		t.Errorf("orders = %d, want 1 placed before failure", len(orders))
	}
	if m.Count() != 1 {
		t.Errorf("count = %d, want remaining item reloaded", m.Count())
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	m := NewManager(newFakeServer(), customerHolder(), nil, nil)
	if _, err := m.Checkout(context.Background(), "Pune", ""); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("err = %v, want ErrEmptyCart", err)
	}
	if _, err := m.Checkout(context.Background(), "  ", ""); err == nil {
		t.Error("expected error for blank address")
	}
}

func TestFormatRupees(t *testing.T) {
	tests := map[float64]string{
		250:    "₹250",
		99.5:   "₹99.5",
		0:      "₹0",
		1200.0: "₹1200",
	}
	for in, want := range tests {
		if got := FormatRupees(in); got != want {
			t.Errorf("FormatRupees(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestGroupByStoreOrder(t *testing.T) {
	groups := GroupByStore([]model.CartItem{
		{StoreID: 3, Price: 10, Quantity: 1},
		{StoreID: 1, Price: 5, Quantity: 2},
		{StoreID: 3, Price: 20, Quantity: 1},
	})
	if len(groups) != 2 || groups[0].StoreID != 3 || groups[1].StoreID != 1 {
		t.Fatalf("groups = %+v", groups)
	}
	if groups[0].Total() != 30 {
		t.Errorf("store 3 total = %v, want 30", groups[0].Total())
	}
}
