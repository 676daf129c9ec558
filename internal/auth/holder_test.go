package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/dukerupert/dukanam/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

func TestHolderLifecycle(t *testing.T) {
	h := NewHolder(nil)
	if _, ok := h.Get(); ok {
		t.Fatal("new holder should be empty")
	}
	if h.Token() != "" {
		t.Errorf("token = %q, want empty", h.Token())
	}

	h.Set(model.AuthUser{Token: "abc", UserID: 3, Role: model.RoleCustomer})
	u, ok := h.Get()
	if !ok || u.UserID != 3 {
		t.Fatalf("get = %+v, %v", u, ok)
	}
	if h.Token() != "abc" {
		t.Errorf("token = %q, want %q", h.Token(), "abc")
	}

	h.Clear()
	if _, ok := h.Get(); ok {
		t.Error("holder should be empty after Clear")
	}
}

func TestHolderGetReturnsCopy(t *testing.T) {
	h := NewHolder(&model.AuthUser{UserName: "Asha"})
	u, _ := h.Get()
	u.UserName = "changed"
	again, _ := h.Get()
	if again.UserName != "Asha" {
		t.Errorf("UserName = %q, want %q", again.UserName, "Asha")
	}
}

func TestCartCountConcurrent(t *testing.T) {
	var c CartCount
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Set(n)
			_ = c.Get()
		}(i)
	}
	wg.Wait()
	if got := c.Get(); got < 0 || got > 9 {
		t.Errorf("count = %d, want 0..9", got)
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "asha@example.in",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("server-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got, err := TokenExpiry(signed)
	if err != nil {
		t.Fatalf("expiry: %v", err)
	}
	if got == nil || !got.Equal(exp) {
		t.Errorf("expiry = %v, want %v", got, exp)
	}
}

func TestTokenExpiryMissingClaim(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"})
	signed, _ := tok.SignedString([]byte("k"))
	got, err := TokenExpiry(signed)
	if err != nil {
		t.Fatalf("expiry: %v", err)
	}
	if got != nil {
		t.Errorf("expiry = %v, want nil", got)
	}
}

func TestTokenExpiryGarbage(t *testing.T) {
	if _, err := TokenExpiry("not-a-jwt"); err == nil {
		t.Error("expected error for malformed token")
	}
}
