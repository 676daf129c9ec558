package auth

import (
	"sync"

	"github.com/dukerupert/dukanam/internal/model"
)

// Holder keeps the authenticated user for the life of the process.
// The zero value holds no user.
type Holder struct {
	mu   sync.RWMutex
	user *model.AuthUser
}

func NewHolder(u *model.AuthUser) *Holder {
	h := &Holder{}
	if u != nil {
		h.Set(*u)
	}
	return h
}

func (h *Holder) Set(u model.AuthUser) {
	h.mu.Lock()
	h.user = &u
	h.mu.Unlock()
}

// Get returns a copy of the current user.
func (h *Holder) Get() (model.AuthUser, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.user == nil {
		return model.AuthUser{}, false
	}
	return *h.user, true
}

func (h *Holder) Clear() {
	h.mu.Lock()
	h.user = nil
	h.mu.Unlock()
}

// Token returns the bearer token, or "" when logged out.
func (h *Holder) Token() string {
	u, ok := h.Get()
	if !ok {
		return ""
	}
	return u.Token
}

// CartCount is the header badge value: total quantity in the cart.
type CartCount struct {
	mu sync.RWMutex
	n  int
}

func (c *CartCount) Set(n int) {
	c.mu.Lock()
	c.n = n
	c.mu.Unlock()
}

func (c *CartCount) Get() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.n
}
