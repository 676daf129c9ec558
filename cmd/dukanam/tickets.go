package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dukerupert/dukanam/internal/chatui"
	"github.com/dukerupert/dukanam/internal/logging"
	"github.com/dukerupert/dukanam/internal/model"
	"github.com/dukerupert/dukanam/internal/support"
)

func init() {
	register(command{name: "tickets", summary: "support tickets: list, ask, chat", run: runTickets})
}

func (a *app) ticketHistory() *support.History {
	view := support.ViewUser
	if u, ok := a.users.Get(); ok && u.IsAdmin() {
		view = support.ViewAgent
	}
	return support.NewHistory(a.client, a.users, view, a.cfg.HistoryInterval, a.logger)
}

func runTickets(ctx context.Context, a *app, args []string) error {
	u, err := a.user()
	if err != nil {
		return err
	}
	history := a.ticketHistory()

	sub, rest := subcommand(args, "list")
	switch sub {
	case "list":
		if err := history.Refresh(ctx); err != nil {
			return err
		}
		return a.printTickets(history.Tickets())

	case "faq":
		for i, q := range support.FAQs {
			a.printf("%d. %s\n", i+1, q)
		}
		return nil

	case "ask":
		question, err := faqOrText(rest)
		if err != nil {
			return err
		}
		chat := support.NewChat(a.client, a.users, history, a.cfg.ChatInterval, a.logger)
		defer chat.Close()
		t, err := chat.Ask(ctx, question)
		if err != nil {
			return err
		}
		a.printf("Opened ticket #%d: %s\n", t.TicketID, t.Subject)
		return nil

	case "chat":
		if len(rest) != 1 {
			return errors.New("usage: dukanam tickets chat <ticket-id>")
		}
		id, err := parseID(rest[0], "ticket id")
		if err != nil {
			return err
		}
		if err := history.Refresh(ctx); err != nil {
			return err
		}
		ticket, ok := history.Find(id)
		if !ok {
			return fmt.Errorf("ticket %d not found", id)
		}
		return a.chat(ctx, history, ticket, u)

	default:
		return fmt.Errorf("unknown tickets command %q", sub)
	}
}

// faqOrText takes either a FAQ number or free text as the question.
func faqOrText(args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("usage: dukanam tickets ask <faq-number | question>")
	}
	if len(args) == 1 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			if n < 1 || n > len(support.FAQs) {
				return "", fmt.Errorf("faq number must be 1-%d", len(support.FAQs))
			}
			return support.FAQs[n-1], nil
		}
	}
	q := strings.TrimSpace(strings.Join(args, " "))
	if q == "" {
		return "", errors.New("question is empty")
	}
	return q, nil
}

func (a *app) printTickets(tickets []model.SupportTicket) error {
	if len(tickets) == 0 {
		a.printf("No tickets\n")
		return nil
	}
	w := a.table()
	fmt.Fprintf(w, "ID\tSTATUS\tUNREAD\tUPDATED\tSUBJECT\n")
	for _, t := range tickets {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", t.TicketID, t.Status, t.UnreadCount, t.UpdatedAt.Format("Jan 2 15:04"), t.Subject)
	}
	return w.Flush()
}

// chat runs the full-screen conversation. Logs go to a file next to the
// database while the UI owns the terminal.
func (a *app) chat(ctx context.Context, history *support.History, ticket model.SupportTicket, u model.AuthUser) error {
	logPath := filepath.Join(filepath.Dir(a.cfg.DBPath), "chat.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open chat log: %w", err)
	}
	defer f.Close()
	logger := logging.SetupWriter(a.cfg.LogLevel, f)

	chat := support.NewChat(a.client, a.users, history, a.cfg.ChatInterval, logger)
	defer chat.Close()
	if err := chat.Open(ctx, ticket); err != nil {
		return err
	}
	return chatui.Run(ctx, chat, u.UserID)
}
