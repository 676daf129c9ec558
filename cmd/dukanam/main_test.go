package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dukerupert/dukanam/internal/model"
)

// fakeMarketplace serves the few endpoints the command tests touch.
func fakeMarketplace(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req model.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(model.AuthUser{Token: "tok-1", UserName: "Asha", Role: model.RoleCustomer, UserID: 7})
	})
	mux.HandleFunc("GET /login-sessions/active/7", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sessionId": 3, "loginTime": "2025-01-02T09:30:00", "ipAddress": "10.0.0.5"}`))
	})
	mux.HandleFunc("POST /login-sessions/logout", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("GET /customer/products/search", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Product{{ProductID: 3, ProductName: "Basmati Rice", Price: 120, QuantityInStock: 4}})
	})
	mux.HandleFunc("GET /cart", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q, want Bearer tok-1", got)
		}
		json.NewEncoder(w).Encode(model.Cart{
			Items: []model.CartItem{
				{ItemID: 1, ProductName: "Rice", Price: 100, Quantity: 2, StoreID: 1, StoreName: "Kirana"},
				{ItemID: 2, ProductName: "Dal", Price: 50, Quantity: 1, StoreID: 1, StoreName: "Kirana"},
			},
			TotalAmount: 250,
		})
	})
	mux.HandleFunc("GET /orders/customer", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Order{
			{OrderID: 11, Status: model.OrderDelivered, TotalAmount: 90, Store: model.Store{StoreName: "Kirana"}},
			{OrderID: 12, Status: model.OrderPending, TotalAmount: 40, Store: model.Store{StoreName: "Kirana"}},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type harness struct {
	t      *testing.T
	apiURL string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("DUKANAM_DB_PATH", filepath.Join(t.TempDir(), "state.db"))
	t.Setenv("DUKANAM_ENCRYPTION_KEY", "")
	return &harness{t: t, apiURL: fakeMarketplace(t).URL}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--api-url", h.apiURL, "--log-level", "error"}, args...)
	err := run(context.Background(), full, &stdout, &stderr)
	return stdout.String(), err
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run("frobnicate"); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("err = %v, want unknown command", err)
	}
}

func TestLoginWhoamiLogout(t *testing.T) {
	h := newHarness(t)

	if _, err := h.run("login", "--contact", "asha@example.com", "--password", "wrong"); err == nil {
		t.Fatal("expected login failure")
	}

	out, err := h.run("login", "--contact", "asha@example.com", "--password", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Logged in as Asha (CUSTOMER)") {
		t.Errorf("login output = %q", out)
	}

	out, err = h.run("whoami")
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(out, "Asha (user 7, CUSTOMER)") {
		t.Errorf("whoami output = %q", out)
	}
	if !strings.Contains(out, "signed in since 2025-01-02 09:30 from 10.0.0.5") {
		t.Errorf("whoami output = %q, want active session line", out)
	}

	// The server rejects the logout record; the local session still ends.
	if _, err := h.run("logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := h.run("whoami"); err != errNotLoggedIn {
		t.Errorf("whoami after logout err = %v, want errNotLoggedIn", err)
	}
}

func TestSearchRecordsHistory(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("search", "rice")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "Basmati Rice") || !strings.Contains(out, "₹120") {
		t.Errorf("search output = %q", out)
	}
	h.run("search", "dal")
	h.run("search", "rice")

	out, err = h.run("search", "--history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if out != "rice\ndal\n" {
		t.Errorf("history = %q, want %q", out, "rice\ndal\n")
	}

	h.run("search", "--clear")
	out, _ = h.run("search", "--history")
	if out != "" {
		t.Errorf("history after clear = %q, want empty", out)
	}
}

func TestCartShowUsesServerTotal(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run("cart"); err != errNotLoggedIn {
		t.Errorf("cart logged out err = %v, want errNotLoggedIn", err)
	}

	if _, err := h.run("login", "--contact", "asha@example.com", "--password", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	out, err := h.run("cart", "show")
	if err != nil {
		t.Fatalf("cart show: %v", err)
	}
	for _, want := range []string{"Kirana", "Rice", "2 x ₹100", "₹250"} {
		if !strings.Contains(out, want) {
			t.Errorf("cart output missing %q:\n%s", want, out)
		}
	}
}

func TestFAQOrText(t *testing.T) {
	q, err := faqOrText([]string{"2"})
	if err != nil || q != "Help with my order" {
		t.Errorf("faqOrText(2) = %q, %v", q, err)
	}
	if _, err := faqOrText([]string{"9"}); err == nil {
		t.Error("out-of-range faq number should fail")
	}
	q, _ = faqOrText([]string{"my", "parcel", "is", "damaged"})
	if q != "my parcel is damaged" {
		t.Errorf("free text = %q", q)
	}
}

func TestOrdersListMarksClosedOrders(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run("login", "--contact", "asha@example.com", "--password", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	out, err := h.run("orders", "list", "-v")
	if err != nil {
		t.Fatalf("orders list: %v", err)
	}
	if !strings.Contains(out, "#11") || !strings.Contains(out, "#12") {
		t.Fatalf("orders output = %q", out)
	}
	if n := strings.Count(out, "closed, no further actions"); n != 1 {
		t.Errorf("closed lines = %d, want 1 (delivered order only)", n)
	}
}
