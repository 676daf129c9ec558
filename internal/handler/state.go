package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dukerupert/dukanam/internal/auth"
)

// State is the badge summary shown by local UIs.
type State struct {
	UserID        int64  `json:"user_id"`
	UserName      string `json:"user_name"`
	Role          string `json:"role"`
	Notifications int    `json:"notifications"`
	TicketUnread  int64  `json:"ticket_unread"`
	CartCount     int    `json:"cart_count"`
}

// Counts supplies the badge values.
type Counts interface {
	NotificationCount() int
	TicketUnread() int64
	CartCount() int
}

// Refresher re-fetches everything the agent tracks.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type StateHandler struct {
	counts    Counts
	refresher Refresher
	logger    *slog.Logger
}

func NewStateHandler(counts Counts, refresher Refresher, logger *slog.Logger) *StateHandler {
	return &StateHandler{counts: counts, refresher: refresher, logger: logger}
}

func (h *StateHandler) state(r *http.Request) State {
	u, _ := auth.FromContext(r.Context())
	return State{
		UserID:        u.UserID,
		UserName:      u.UserName,
		Role:          string(u.Role),
		Notifications: h.counts.NotificationCount(),
		TicketUnread:  h.counts.TicketUnread(),
		CartCount:     h.counts.CartCount(),
	}
}

func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.state(r))
}

// Refresh polls the backend now instead of waiting for the next tick.
func (h *StateHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.refresher.Refresh(r.Context()); err != nil {
		h.logger.Warn("manual refresh", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.state(r))
}

// Liveness reports whether the agent is polling and how many UIs listen.
type Liveness interface {
	Polling() bool
	Clients() int
}

type health struct {
	Status  string `json:"status"`
	Polling bool   `json:"polling"`
	Clients int    `json:"clients"`
}

func Health(live Liveness) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, health{Status: "ok", Polling: live.Polling(), Clients: live.Clients()})
	}
}
