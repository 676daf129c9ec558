// Package support keeps a user's or agent's support ticket list and the
// active ticket's conversation in sync with the backend by polling.
package support

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dukerupert/dukanam/internal/model"
	"github.com/dukerupert/dukanam/internal/poll"
)

// ErrNotLoggedIn is returned by user actions when nobody is logged in.
var ErrNotLoggedIn = errors.New("please login to chat with support")

// Users reports the logged-in user.
type Users interface {
	Get() (model.AuthUser, bool)
}

// TicketLister lists tickets. A zero userID lists all tickets.
type TicketLister interface {
	Tickets(ctx context.Context, userID int64) ([]model.SupportTicket, error)
}

// View selects whose tickets a History follows.
type View int

const (
	// ViewUser lists the logged-in user's own tickets.
	ViewUser View = iota
	// ViewAgent lists every ticket, for support staff.
	ViewAgent
)

// History is the ticket list with per-ticket unread counts.
type History struct {
	mu       sync.RWMutex
	backend  TicketLister
	users    Users
	view     View
	tickets  []model.SupportTicket
	onChange func([]model.SupportTicket)
	poller   *poll.Poller
}

func NewHistory(backend TicketLister, users Users, view View, interval time.Duration, logger *slog.Logger) *History {
	if interval <= 0 {
		interval = poll.HistoryInterval
	}
	h := &History{backend: backend, users: users, view: view}
	h.poller = poll.New("ticket-history", interval, h.Refresh, logger)
	return h
}

func (h *History) Start(ctx context.Context) { h.poller.Start(ctx) }
func (h *History) Stop()                     { h.poller.Stop() }

// OnChange registers fn to run with a copy of the list after each change.
func (h *History) OnChange(fn func([]model.SupportTicket)) {
	h.mu.Lock()
	h.onChange = fn
	h.mu.Unlock()
}

// Refresh replaces the list with the server's.
func (h *History) Refresh(ctx context.Context) error {
	u, ok := h.users.Get()
	if !ok {
		h.mu.Lock()
		h.tickets = nil
		h.notifyLocked()
		return nil
	}
	var userID int64
	if h.currentView() == ViewUser {
		userID = u.UserID
	}

	tickets, err := h.backend.Tickets(ctx, userID)
	if err != nil {
		return fmt.Errorf("refresh ticket history: %w", err)
	}

	h.mu.Lock()
	h.tickets = tickets
	h.notifyLocked()
	return nil
}

// Tickets returns a copy of the list.
func (h *History) Tickets() []model.SupportTicket {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.copyLocked()
}

// SetView switches between the user and agent lists. It takes effect on
// the next refresh.
func (h *History) SetView(v View) {
	h.mu.Lock()
	h.view = v
	h.mu.Unlock()
}

func (h *History) currentView() View {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.view
}

// UnreadTotal sums unread counts across tickets.
func (h *History) UnreadTotal() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var n int64
	for _, t := range h.tickets {
		n += t.UnreadCount
	}
	return n
}

func (h *History) Find(ticketID int64) (model.SupportTicket, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, t := range h.tickets {
		if t.TicketID == ticketID {
			return t, true
		}
	}
	return model.SupportTicket{}, false
}

// markRead zeroes a ticket's local unread count after the server accepted
// the read.
func (h *History) markRead(ticketID int64) {
	h.mu.Lock()
	for i := range h.tickets {
		if h.tickets[i].TicketID == ticketID {
			h.tickets[i].UnreadCount = 0
		}
	}
	h.notifyLocked()
}

// notifyLocked releases h.mu and then calls the listener.
func (h *History) notifyLocked() {
	list, fn := h.copyLocked(), h.onChange
	h.mu.Unlock()
	if fn != nil {
		fn(list)
	}
}

func (h *History) copyLocked() []model.SupportTicket {
	out := make([]model.SupportTicket, len(h.tickets))
	copy(out, h.tickets)
	return out
}
