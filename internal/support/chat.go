package support

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dukerupert/dukanam/internal/model"
	"github.com/dukerupert/dukanam/internal/poll"
)

// ErrNoActiveTicket is returned by Send when no ticket is open.
var ErrNoActiveTicket = errors.New("no active ticket")

// FAQs are the canned questions offered on the help screen. Picking one
// opens a ticket with it as subject and first message.
var FAQs = []string{
	"Why my order is late?",
	"Help with my order",
	"Where is my order?",
	"Why it is showing extra amount?",
	"Contact with customer care agent",
}

// Backend is the part of the API a chat needs.
type Backend interface {
	TicketLister
	CreateTicket(ctx context.Context, userID int64, subject string) (*model.SupportTicket, error)
	TicketMessages(ctx context.Context, ticketID int64) ([]model.TicketMessage, error)
	SendTicketMessage(ctx context.Context, ticketID, senderID int64, content string) (*model.TicketMessage, error)
	MarkTicketRead(ctx context.Context, ticketID, userID int64) error
}

// ChatSnapshot is the active conversation handed to change listeners.
type ChatSnapshot struct {
	Ticket   model.SupportTicket
	Messages []model.TicketMessage
}

// Chat follows one active ticket's messages. Each poll replaces the
// message list wholesale; sending posts and then re-fetches.
type Chat struct {
	mu       sync.RWMutex
	backend  Backend
	users    Users
	history  *History
	interval time.Duration
	logger   *slog.Logger

	active   *model.SupportTicket
	messages []model.TicketMessage
	poller   *poll.Poller
	onChange func(ChatSnapshot)
}

// NewChat creates a chat. history may be nil; when set, it is refreshed
// after a new ticket is asked and its unread count is cleared on open.
func NewChat(backend Backend, users Users, history *History, interval time.Duration, logger *slog.Logger) *Chat {
	if interval <= 0 {
		interval = poll.ChatInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Chat{
		backend:  backend,
		users:    users,
		history:  history,
		interval: interval,
		logger:   logger,
	}
}

// FAQs returns the canned questions.
func (c *Chat) FAQs() []string {
	out := make([]string, len(FAQs))
	copy(out, FAQs)
	return out
}

func (c *Chat) OnChange(fn func(ChatSnapshot)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Open makes ticket the active conversation: it fetches the messages, marks
// the ticket read once, and polls until Close or ctx is done. Polls never
// mark read.
func (c *Chat) Open(ctx context.Context, ticket model.SupportTicket) error {
	u, ok := c.users.Get()
	if !ok {
		return ErrNotLoggedIn
	}

	c.Close()

	p := poll.New(fmt.Sprintf("ticket-%d", ticket.TicketID), c.interval, c.Refresh, c.logger)
	c.mu.Lock()
	t := ticket
	c.active = &t
	c.messages = nil
	c.poller = p
	c.mu.Unlock()

	fetchErr := c.Refresh(ctx)

	if err := c.backend.MarkTicketRead(ctx, ticket.TicketID, u.UserID); err != nil {
		c.logger.Warn("mark ticket read", "component", "support", "ticket_id", ticket.TicketID, "error", err)
	} else {
		c.mu.Lock()
		if c.active != nil && c.active.TicketID == ticket.TicketID {
			c.active.UnreadCount = 0
		}
		c.mu.Unlock()
		if c.history != nil {
			c.history.markRead(ticket.TicketID)
		}
	}

	p.StartDeferred(ctx)
	return fetchErr
}

// Ask opens a new ticket with question as subject and first message.
func (c *Chat) Ask(ctx context.Context, question string) (*model.SupportTicket, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("ask: question is empty")
	}
	u, ok := c.users.Get()
	if !ok {
		return nil, ErrNotLoggedIn
	}

	ticket, err := c.backend.CreateTicket(ctx, u.UserID, question)
	if err != nil {
		return nil, fmt.Errorf("start support session: %w", err)
	}
	if _, err := c.backend.SendTicketMessage(ctx, ticket.TicketID, u.UserID, question); err != nil {
		return nil, fmt.Errorf("start support session: %w", err)
	}
	if err := c.Open(ctx, *ticket); err != nil {
		return ticket, err
	}
	if c.history != nil {
		if err := c.history.Refresh(ctx); err != nil {
			c.logger.Warn("refresh history after ask", "component", "support", "error", err)
		}
	}
	return ticket, nil
}

// Send posts content to the active ticket and re-fetches the conversation.
// Blank content is ignored.
func (c *Chat) Send(ctx context.Context, content string) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	u, ok := c.users.Get()
	if !ok {
		return ErrNotLoggedIn
	}
	ticket, ok := c.Active()
	if !ok {
		return ErrNoActiveTicket
	}

	if _, err := c.backend.SendTicketMessage(ctx, ticket.TicketID, u.UserID, content); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return c.Refresh(ctx)
}

// Refresh fetches the active ticket's messages and replaces the list. A
// response for a ticket that is no longer active is dropped.
func (c *Chat) Refresh(ctx context.Context) error {
	c.mu.RLock()
	if c.active == nil {
		c.mu.RUnlock()
		return nil
	}
	ticketID := c.active.TicketID
	c.mu.RUnlock()

	msgs, err := c.backend.TicketMessages(ctx, ticketID)
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp.Time)
	})

	c.mu.Lock()
	if c.active == nil || c.active.TicketID != ticketID {
		c.mu.Unlock()
		return nil
	}
	c.messages = msgs
	snap, fn := c.snapshotLocked(), c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
	return nil
}

// Close deactivates the ticket and stops its poller.
func (c *Chat) Close() {
	c.mu.Lock()
	p := c.poller
	c.poller = nil
	c.active = nil
	c.messages = nil
	c.mu.Unlock()

	if p != nil {
		p.Stop()
	}
}

func (c *Chat) Active() (model.SupportTicket, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.active == nil {
		return model.SupportTicket{}, false
	}
	return *c.active, true
}

// Messages returns a copy of the conversation, oldest first.
func (c *Chat) Messages() []model.TicketMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked().Messages
}

func (c *Chat) snapshotLocked() ChatSnapshot {
	var snap ChatSnapshot
	if c.active != nil {
		snap.Ticket = *c.active
	}
	snap.Messages = make([]model.TicketMessage, len(c.messages))
	copy(snap.Messages, c.messages)
	return snap
}
