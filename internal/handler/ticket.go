package handler

import (
	"net/http"

	"github.com/dukerupert/dukanam/internal/model"
)

// Tickets is the ticket history surface the handler uses.
type Tickets interface {
	Tickets() []model.SupportTicket
	UnreadTotal() int64
}

type TicketHandler struct {
	history Tickets
}

func NewTicketHandler(history Tickets) *TicketHandler {
	return &TicketHandler{history: history}
}

type ticketList struct {
	Unread  int64                 `json:"unread"`
	Tickets []model.SupportTicket `json:"tickets"`
}

func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ticketList{
		Unread:  h.history.UnreadTotal(),
		Tickets: h.history.Tickets(),
	})
}
