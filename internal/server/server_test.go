package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dukerupert/dukanam/internal/auth"
	"github.com/dukerupert/dukanam/internal/handler"
	"github.com/dukerupert/dukanam/internal/model"
	"github.com/dukerupert/dukanam/internal/store"
	ws "github.com/dukerupert/dukanam/internal/websocket"
)

type fakeBackend struct {
	mu            sync.Mutex
	notifications []model.Notification
	tickets       []model.SupportTicket
	cart          model.Cart
	read          []int64
	ticketQ       []int64
	profileErr    error
	stats         model.AdminStats
}

func (f *fakeBackend) UnreadNotifications(ctx context.Context, userID int64) ([]model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Notification, len(f.notifications))
	copy(out, f.notifications)
	return out, nil
}

func (f *fakeBackend) MarkNotificationRead(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.read = append(f.read, id)
	kept := f.notifications[:0]
	for _, n := range f.notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	f.notifications = kept
	return nil
}

func (f *fakeBackend) ProfileRequest(ctx context.Context, id int64) (*model.ProfileChangeRequest, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return &model.ProfileChangeRequest{RequestID: id, User: model.User{UserID: 42}}, nil
}

func (f *fakeBackend) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	st := f.stats
	return &st, nil
}

func (f *fakeBackend) Tickets(ctx context.Context, userID int64) ([]model.SupportTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ticketQ = append(f.ticketQ, userID)
	return f.tickets, nil
}

func (f *fakeBackend) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.cart
	return &c, nil
}

func (f *fakeBackend) AddToCart(ctx context.Context, userID int64, req model.AddToCartRequest) error {
	return nil
}

func (f *fakeBackend) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) error {
	return nil
}

func (f *fakeBackend) RemoveCartItem(ctx context.Context, userID, itemID int64) error {
	return nil
}

func (f *fakeBackend) PlaceOrder(ctx context.Context, userID int64, req model.PlaceOrderRequest) (*model.Order, error) {
	return &model.Order{}, nil
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		notifications: []model.Notification{
			{ID: 1, Message: "Your order has shipped"},
			{ID: 2, Message: "New reply on Support Ticket #4"},
		},
		tickets: []model.SupportTicket{
			{TicketID: 4, UnreadCount: 2},
			{TicketID: 5, UnreadCount: 1},
		},
		cart: model.Cart{
			Items: []model.CartItem{
				{ItemID: 1, Price: 100, Quantity: 2},
				{ItemID: 2, Price: 50, Quantity: 1},
			},
			TotalAmount: 250,
		},
	}
}

type fakeSessions struct {
	mu   sync.Mutex
	sess *model.Session
}

func (f *fakeSessions) Load() (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sess == nil {
		return nil, store.ErrNoSession
	}
	s := *f.sess
	return &s, nil
}

func customer() model.AuthUser {
	return model.AuthUser{UserID: 7, UserName: "asha", Role: model.RoleCustomer, Token: "t1"}
}

func newTestServer(t *testing.T, users *auth.Holder) (*Server, *fakeBackend) {
	t.Helper()
	fb := newFakeBackend()
	return New(fb, users, nil, Intervals{}, nil), fb
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHealthIsPublic(t *testing.T) {
	s, _ := newTestServer(t, auth.NewHolder(nil))

	var got struct {
		Status  string `json:"status"`
		Polling bool   `json:"polling"`
	}
	rec := do(t, s.Router(), "GET", "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	json.NewDecoder(rec.Body).Decode(&got)
	if got.Status != "ok" || got.Polling {
		t.Errorf("health before start = %+v, want ok and not polling", got)
	}

	s.Start(context.Background())
	defer s.Stop()
	rec = do(t, s.Router(), "GET", "/health")
	json.NewDecoder(rec.Body).Decode(&got)
	if !got.Polling {
		t.Error("health after start should report polling")
	}
}

func TestStateRequiresSession(t *testing.T) {
	s, _ := newTestServer(t, auth.NewHolder(nil))
	for _, path := range []string{"/state", "/notifications", "/tickets"} {
		if rec := do(t, s.Router(), "GET", path); rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s status = %d, want 401", path, rec.Code)
		}
	}
}

func TestStateAfterRefresh(t *testing.T) {
	u := customer()
	s, _ := newTestServer(t, auth.NewHolder(&u))
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	rec := do(t, s.Router(), "GET", "/state")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var st handler.State
	if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Notifications != 2 {
		t.Errorf("notifications = %d, want 2", st.Notifications)
	}
	if st.TicketUnread != 3 {
		t.Errorf("ticket_unread = %d, want 3", st.TicketUnread)
	}
	if st.CartCount != 3 {
		t.Errorf("cart_count = %d, want 3", st.CartCount)
	}
	if st.UserName != "asha" {
		t.Errorf("user_name = %q, want asha", st.UserName)
	}
}

func TestReadNotification(t *testing.T) {
	u := customer()
	s, fb := newTestServer(t, auth.NewHolder(&u))
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	router := s.Router()

	rec := do(t, router, "POST", "/notifications/2/read")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Destination string `json:"destination"`
		Remaining   int    `json:"remaining"`
	}
	json.NewDecoder(rec.Body).Decode(&got)
	if got.Destination != "/help" {
		t.Errorf("destination = %q, want /help", got.Destination)
	}
	if got.Remaining != 1 {
		t.Errorf("remaining = %d, want 1", got.Remaining)
	}
	if len(fb.read) != 1 || fb.read[0] != 2 {
		t.Errorf("server reads = %v, want [2]", fb.read)
	}

	if rec := do(t, router, "POST", "/notifications/2/read"); rec.Code != http.StatusNotFound {
		t.Errorf("second read status = %d, want 404", rec.Code)
	}
	if rec := do(t, router, "POST", "/notifications/abc/read"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}
}

func TestReadNotificationUnresolvedDestination(t *testing.T) {
	u := customer()
	s, fb := newTestServer(t, auth.NewHolder(&u))
	reqID := int64(5)
	fb.notifications = append(fb.notifications, model.Notification{ID: 3, Message: "Profile update", RelatedProfileRequestID: &reqID})
	fb.profileErr = errors.New("lookup failed")
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	rec := do(t, s.Router(), "POST", "/notifications/3/read")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Destination string `json:"destination"`
		Remaining   int    `json:"remaining"`
	}
	json.NewDecoder(rec.Body).Decode(&got)
	if got.Destination != "" {
		t.Errorf("destination = %q, want empty", got.Destination)
	}
	if got.Remaining != 2 {
		t.Errorf("remaining = %d, want 2", got.Remaining)
	}
	if s.NotificationCount() != 2 {
		t.Errorf("count = %d, want 2 after read", s.NotificationCount())
	}
}

func TestAdminStatsRequiresAdmin(t *testing.T) {
	u := customer()
	s, fb := newTestServer(t, auth.NewHolder(&u))
	fb.stats = model.AdminStats{TotalUsers: 12, TotalOrders: 30}

	if rec := do(t, s.Router(), "GET", "/admin/stats"); rec.Code != http.StatusForbidden {
		t.Errorf("customer status = %d, want 403", rec.Code)
	}

	s.users.Set(model.AuthUser{UserID: 1, Role: model.RoleAdmin, Token: "a1"})
	rec := do(t, s.Router(), "GET", "/admin/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var got model.AdminStats
	json.NewDecoder(rec.Body).Decode(&got)
	if got.TotalUsers != 12 || got.TotalOrders != 30 {
		t.Errorf("stats = %+v", got)
	}
}

func TestRefreshIsThrottled(t *testing.T) {
	u := customer()
	s, _ := newTestServer(t, auth.NewHolder(&u))
	router := s.Router()

	if rec := do(t, router, "POST", "/refresh"); rec.Code != http.StatusOK {
		t.Fatalf("first refresh status = %d, want 200", rec.Code)
	}
	if rec := do(t, router, "POST", "/refresh"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second refresh status = %d, want 429", rec.Code)
	}
}

func TestAdminUsesAgentView(t *testing.T) {
	u := model.AuthUser{UserID: 1, Role: model.RoleAdmin, Token: "a"}
	s, fb := newTestServer(t, auth.NewHolder(&u))
	s.history.Refresh(context.Background())
	if len(fb.ticketQ) != 1 || fb.ticketQ[0] != 0 {
		t.Errorf("ticket queries = %v, want [0]", fb.ticketQ)
	}
}

func TestSyncSessionFollowsLogout(t *testing.T) {
	u := customer()
	users := auth.NewHolder(&u)
	fb := newFakeBackend()
	sessions := &fakeSessions{}
	s := New(fb, users, sessions, Intervals{}, nil)
	ctx := context.Background()

	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if err := s.syncSession(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if _, ok := users.Get(); ok {
		t.Error("user should be cleared after logout elsewhere")
	}
	if got := s.NotificationCount(); got != 0 {
		t.Errorf("notification count = %d, want 0", got)
	}
	if got := s.CartCount(); got != 0 {
		t.Errorf("cart count = %d, want 0", got)
	}

	sessions.sess = &model.Session{AuthUser: model.AuthUser{UserID: 1, Role: model.RoleAdmin, Token: "a"}}
	if err := s.syncSession(ctx); err != nil {
		t.Fatalf("sync login: %v", err)
	}
	got, ok := users.Get()
	if !ok || got.UserID != 1 {
		t.Errorf("user = %+v, want user 1", got)
	}
	if last := fb.ticketQ[len(fb.ticketQ)-1]; last != 0 {
		t.Errorf("admin ticket query = %d, want 0", last)
	}
}

func TestEventsReachSubscribers(t *testing.T) {
	u := customer()
	s, _ := newTestServer(t, auth.NewHolder(&u))
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	events := make(chan ws.Event, 8)
	go ws.Subscribe(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", func(ev ws.Event) {
		events <- ev
	})

	counts := map[string]int64{}
	for len(counts) < 3 {
		select {
		case ev := <-events:
			counts[ev.Entity] = ev.Count
		case <-ctx.Done():
			t.Fatalf("timeout; got %v", counts)
		}
	}
	want := map[string]int64{ws.EntityNotifications: 2, ws.EntityTickets: 3, ws.EntityCart: 3}
	for entity, n := range want {
		if counts[entity] != n {
			t.Errorf("%s count = %d, want %d", entity, counts[entity], n)
		}
	}
}
