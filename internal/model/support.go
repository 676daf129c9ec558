package model

type TicketStatus string

const (
	TicketOpen   TicketStatus = "OPEN"
	TicketClosed TicketStatus = "CLOSED"
)

type SupportTicket struct {
	TicketID    int64           `json:"ticketId"`
	Subject     string          `json:"subject"`
	Status      TicketStatus    `json:"status"`
	User        User            `json:"user"`
	UnreadCount int64           `json:"unreadCount"`
	CreatedAt   Timestamp       `json:"createdAt"`
	UpdatedAt   Timestamp       `json:"updatedAt"`
	Messages    []TicketMessage `json:"messages,omitempty"`
}

type TicketMessage struct {
	MessageID int64     `json:"messageId"`
	Sender    User      `json:"sender"`
	Content   string    `json:"content"`
	Timestamp Timestamp `json:"timestamp"`
	IsRead    bool      `json:"read"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}
