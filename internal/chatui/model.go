// Package chatui is the terminal chat screen for one support ticket.
package chatui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dukerupert/dukanam/internal/model"
	"github.com/dukerupert/dukanam/internal/support"
)

// Sender posts a message on the active ticket.
type Sender interface {
	Send(ctx context.Context, content string) error
}

// SnapshotMsg carries a fresh message list into the program. Feed it from
// the chat's change listener with program.Send.
type SnapshotMsg support.ChatSnapshot

type sentMsg struct{ err error }

// headerLines is the ticket title plus its rule; footerLines is the input
// plus the status line.
const (
	headerLines = 2
	footerLines = 2
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selfStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	otherStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	closedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Model renders the conversation and sends what the user types.
type Model struct {
	ctx      context.Context
	sender   Sender
	selfID   int64
	ticket   model.SupportTicket
	messages []model.TicketMessage
	viewport viewport.Model
	input    textinput.Model
	sending  bool
	err      error
	width    int
}

// New creates the chat screen for ticket. selfID marks the user's own
// messages.
func New(ctx context.Context, sender Sender, ticket model.SupportTicket, selfID int64) Model {
	input := textinput.New()
	input.Placeholder = "Type a message"
	input.Prompt = "> "
	input.CharLimit = 1000
	input.Focus()

	return Model{
		ctx:      ctx,
		sender:   sender,
		selfID:   selfID,
		ticket:   ticket,
		viewport: viewport.New(80, 20),
		input:    input,
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-headerLines-footerLines)
		m.input.Width = max(10, msg.Width-len(m.input.Prompt)-1)
		m.refreshContent()
		return m, nil

	case SnapshotMsg:
		if msg.Ticket.TicketID != 0 && msg.Ticket.TicketID != m.ticket.TicketID {
			return m, nil
		}
		if msg.Ticket.TicketID != 0 {
			m.ticket = msg.Ticket
		}
		m.messages = msg.Messages
		m.refreshContent()
		return m, nil

	case sentMsg:
		m.sending = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the input. Blank input is ignored. Closed tickets still
// accept messages; the server decides what to do with them.
func (m Model) submit() (tea.Model, tea.Cmd) {
	content := strings.TrimSpace(m.input.Value())
	if content == "" || m.sending {
		return m, nil
	}
	m.input.Reset()
	m.sending = true
	m.err = nil

	ctx, sender := m.ctx, m.sender
	return m, func() tea.Msg {
		return sentMsg{err: sender.Send(ctx, content)}
	}
}

func (m *Model) refreshContent() {
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

func (m Model) renderMessages() string {
	if len(m.messages) == 0 {
		return helpStyle.Render("No messages yet.")
	}
	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n")
		}
		name := msg.Sender.DisplayName()
		style := otherStyle
		if msg.Sender.UserID == m.selfID {
			name, style = "You", selfStyle
		}
		stamp := ""
		if !msg.Timestamp.IsZero() {
			stamp = " " + timeStyle.Render(msg.Timestamp.Format("Jan 2 15:04"))
		}
		fmt.Fprintf(&b, "%s%s\n", style.Render(name), stamp)
		b.WriteString(lipgloss.NewStyle().Width(max(10, m.width-2)).PaddingLeft(2).Render(msg.Content))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) View() string {
	title := fmt.Sprintf("#%d %s", m.ticket.TicketID, m.ticket.Subject)
	header := titleStyle.Render(title)
	if m.ticket.Status == model.TicketClosed {
		header += " " + closedStyle.Render("CLOSED")
	}
	rule := ruleStyle.Render(strings.Repeat("─", max(1, m.width)))

	status := helpStyle.Render("enter send · pgup/pgdn scroll · esc quit")
	switch {
	case m.err != nil:
		status = errorStyle.Render("error: " + m.err.Error())
	case m.sending:
		status = helpStyle.Render("sending…")
	case m.ticket.Status == model.TicketClosed:
		status = helpStyle.Render("this ticket is closed · enter send · esc quit")
	}

	return strings.Join([]string{header, rule, m.viewport.View(), m.input.View(), status}, "\n")
}

// Messages returns what the screen currently shows.
func (m Model) Messages() []model.TicketMessage {
	return m.messages
}
