package chatui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dukerupert/dukanam/internal/support"
)

// Run shows the chat's active ticket until the user quits. The chat must
// already be open.
func Run(ctx context.Context, chat *support.Chat, selfID int64) error {
	ticket, ok := chat.Active()
	if !ok {
		return support.ErrNoActiveTicket
	}

	m := New(ctx, chat, ticket, selfID)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	chat.OnChange(func(snap support.ChatSnapshot) {
		program.Send(SnapshotMsg(snap))
	})
	defer chat.OnChange(nil)

	go program.Send(SnapshotMsg{Ticket: ticket, Messages: chat.Messages()})

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run chat: %w", err)
	}
	return nil
}
