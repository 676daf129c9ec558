package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dukerupert/dukanam/internal/model"
)

// Tickets lists support tickets. A zero userID lists every ticket, which is
// the support agent's view.
func (c *Client) Tickets(ctx context.Context, userID int64) ([]model.SupportTicket, error) {
	var q url.Values
	if userID != 0 {
		q = userQuery(userID)
	}
	var list []model.SupportTicket
	if err := c.do(ctx, http.MethodGet, "/support/tickets", q, nil, &list); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return list, nil
}

func (c *Client) CreateTicket(ctx context.Context, userID int64, subject string) (*model.SupportTicket, error) {
	q := userQuery(userID)
	if subject != "" {
		q.Set("subject", subject)
	}
	var t model.SupportTicket
	if err := c.do(ctx, http.MethodPost, "/support/tickets", q, nil, &t); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return &t, nil
}

func (c *Client) TicketMessages(ctx context.Context, ticketID int64) ([]model.TicketMessage, error) {
	var list []model.TicketMessage
	if err := c.do(ctx, http.MethodGet, "/support/tickets/"+id(ticketID)+"/messages", nil, nil, &list); err != nil {
		return nil, fmt.Errorf("list ticket messages: %w", err)
	}
	return list, nil
}

func (c *Client) SendTicketMessage(ctx context.Context, ticketID, senderID int64, content string) (*model.TicketMessage, error) {
	req := model.SendMessageRequest{Content: content}
	if err := c.check(req); err != nil {
		return nil, err
	}
	q := url.Values{"senderId": {id(senderID)}}
	var m model.TicketMessage
	if err := c.do(ctx, http.MethodPost, "/support/tickets/"+id(ticketID)+"/messages", q, req, &m); err != nil {
		return nil, fmt.Errorf("send ticket message: %w", err)
	}
	return &m, nil
}

// MarkTicketRead marks every message in the ticket not sent by userID as read.
func (c *Client) MarkTicketRead(ctx context.Context, ticketID, userID int64) error {
	if err := c.do(ctx, http.MethodPut, "/support/tickets/"+id(ticketID)+"/read", userQuery(userID), nil, nil); err != nil {
		return fmt.Errorf("mark ticket read: %w", err)
	}
	return nil
}
